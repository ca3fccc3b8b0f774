package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPromptRequest(args map[string]string) *mcp.GetPromptRequest {
	return &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: args},
	}
}

func TestServer_handleCreateBudgetPrompt(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(&mockSheetsAPI{}, &mockDriveAPI{})

	t.Run("defaults", func(t *testing.T) {
		result, err := server.handleCreateBudgetPrompt(ctx, getPromptRequest(nil))

		require.NoError(t, err)
		require.Len(t, result.Messages, 1)
		text := result.Messages[0].Content.(*mcp.TextContent).Text
		assert.Contains(t, text, `"Personal Budget USD"`)
		assert.Contains(t, text, "Currency: USD")
	})

	t.Run("explicit arguments", func(t *testing.T) {
		result, err := server.handleCreateBudgetPrompt(ctx, getPromptRequest(map[string]string{
			"budget_type": "business",
			"currency":    "EUR",
		}))

		require.NoError(t, err)
		text := result.Messages[0].Content.(*mcp.TextContent).Text
		assert.Contains(t, text, `"Business Budget EUR"`)
		assert.Contains(t, text, "Budget Type: business")
	})
}

func TestServer_handleAnalyzeDataPrompt(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(&mockSheetsAPI{}, &mockDriveAPI{})

	result, err := server.handleAnalyzeDataPrompt(ctx, getPromptRequest(map[string]string{
		"data_source": "sales.csv",
	}))

	require.NoError(t, err)
	text := result.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "analyze data from sales.csv")
	assert.Contains(t, text, "Analysis Type: summary")
}

package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

func float64Ptr(f float64) *float64 { return &f }

func TestServer_handleFilterApply(t *testing.T) {
	ctx := context.Background()

	t.Run("builds filter over the parsed range", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := FilterApplyInput{SheetName: "Data", FilterRange: "Data!A1:D50"}
		_, output, err := server.handleFilterApply(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Applied filter to Data!A1:D50 in 'Data'", output.Message)

		req := api.lastBatchRequest()
		require.NotNil(t, req.SetBasicFilter)
		gr := req.SetBasicFilter.Filter.Range
		assert.Equal(t, int64(1), gr.SheetId)
		assert.Equal(t, int64(50), gr.EndRowIndex)
		assert.Equal(t, int64(4), gr.EndColumnIndex)
	})

	t.Run("sheet name input fills a bare range", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := FilterApplyInput{SheetName: "Data", FilterRange: "A1:B10"}
		_, _, err := server.handleFilterApply(ctx, nil, input)

		require.NoError(t, err)
		req := api.lastBatchRequest()
		assert.Equal(t, int64(1), req.SetBasicFilter.Filter.Range.SheetId)
	})
}

func TestServer_handleFilterClear(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	_, output, err := server.handleFilterClear(ctx, nil, SheetNameInput{SheetName: "Data"})

	require.NoError(t, err)
	assert.Equal(t, "Cleared filters from 'Data'", output.Message)
	req := api.lastBatchRequest()
	require.NotNil(t, req.ClearBasicFilter)
	assert.Equal(t, int64(1), req.ClearBasicFilter.SheetId)
}

func TestServer_handleValidationAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("list validation", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := ValidationAddInput{
			Range:          "Sheet1!A1:A10",
			ValidationType: "ONE_OF_LIST",
			Values:         []string{"Yes", "No"},
		}
		_, _, err := server.handleValidationAdd(ctx, nil, input)

		require.NoError(t, err)
		req := api.lastBatchRequest()
		require.NotNil(t, req.SetDataValidation)
		rule := req.SetDataValidation.Rule
		assert.Equal(t, "ONE_OF_LIST", rule.Condition.Type)
		require.Len(t, rule.Condition.Values, 2)
		assert.Equal(t, "Yes", rule.Condition.Values[0].UserEnteredValue)
		assert.True(t, rule.ShowCustomUi)
		assert.True(t, rule.Strict)
	})

	t.Run("number between", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := ValidationAddInput{
			Range:          "Sheet1!B1:B10",
			ValidationType: "NUMBER_BETWEEN",
			MinValue:       float64Ptr(1),
			MaxValue:       float64Ptr(100),
		}
		_, _, err := server.handleValidationAdd(ctx, nil, input)

		require.NoError(t, err)
		req := api.lastBatchRequest()
		values := req.SetDataValidation.Rule.Condition.Values
		require.Len(t, values, 2)
		assert.Equal(t, "1", values[0].UserEnteredValue)
		assert.Equal(t, "100", values[1].UserEnteredValue)
	})

	t.Run("number between requires both bounds", func(t *testing.T) {
		api := &mockSheetsAPI{}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := ValidationAddInput{
			Range:          "B1:B10",
			ValidationType: "NUMBER_BETWEEN",
			MinValue:       float64Ptr(1),
		}
		_, _, err := server.handleValidationAdd(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, api.batchRequests)
	})
}

func TestServer_handleValidationClear(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	_, output, err := server.handleValidationClear(ctx, nil, RangeInput{Range: "Sheet1!A1:A10"})

	require.NoError(t, err)
	assert.Equal(t, "Cleared data validation from Sheet1!A1:A10", output.Message)
	req := api.lastBatchRequest()
	require.NotNil(t, req.SetDataValidation)
	assert.Nil(t, req.SetDataValidation.Rule)
}

func TestServer_handleProtectionAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("warning only without editors", func(t *testing.T) {
		api := &mockSheetsAPI{
			metadata: metadataWithSheets("Sheet1"),
			batchResponse: &sheets.BatchUpdateSpreadsheetResponse{
				Replies: []*sheets.Response{{
					AddProtectedRange: &sheets.AddProtectedRangeResponse{
						ProtectedRange: &sheets.ProtectedRange{ProtectedRangeId: 31},
					},
				}},
			},
		}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := ProtectionAddInput{Range: "Sheet1!A1:B10"}
		_, output, err := server.handleProtectionAdd(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, int64(31), output.ProtectedRangeID)
		assert.Equal(t, "Protected Range", output.Description)

		req := api.lastBatchRequest()
		protected := req.AddProtectedRange.ProtectedRange
		assert.True(t, protected.WarningOnly)
		assert.Nil(t, protected.Editors)
	})

	t.Run("editors disable warning mode", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := ProtectionAddInput{
			Range:       "Sheet1!A1:B10",
			Description: "Payroll",
			Editors:     []string{"admin@example.test"},
		}
		_, output, err := server.handleProtectionAdd(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Payroll", output.Description)

		req := api.lastBatchRequest()
		protected := req.AddProtectedRange.ProtectedRange
		assert.False(t, protected.WarningOnly)
		require.NotNil(t, protected.Editors)
		assert.Equal(t, []string{"admin@example.test"}, protected.Editors.Users)
	})
}

func TestServer_handleProtectionRemove(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{}
	server, _ := newTestServer(api, &mockDriveAPI{})

	input := ProtectionRemoveInput{ProtectionID: 31}
	_, output, err := server.handleProtectionRemove(ctx, nil, input)

	require.NoError(t, err)
	assert.Equal(t, "Removed protection with ID: 31", output.Message)
	req := api.lastBatchRequest()
	assert.Equal(t, int64(31), req.DeleteProtectedRange.ProtectedRangeId)
}

func TestServer_handleNamedRangeAdd(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{
		metadata: metadataWithSheets("Sheet1"),
		batchResponse: &sheets.BatchUpdateSpreadsheetResponse{
			Replies: []*sheets.Response{{
				AddNamedRange: &sheets.AddNamedRangeResponse{
					NamedRange: &sheets.NamedRange{NamedRangeId: "nr-9"},
				},
			}},
		},
	}
	server, _ := newTestServer(api, &mockDriveAPI{})

	input := NamedRangeAddInput{Name: "Budget", Range: "Sheet1!A1:B10"}
	_, output, err := server.handleNamedRangeAdd(ctx, nil, input)

	require.NoError(t, err)
	assert.Equal(t, "nr-9", output.NamedRangeID)
	assert.Equal(t, "Budget", output.Name)

	req := api.lastBatchRequest()
	assert.Equal(t, "Budget", req.AddNamedRange.NamedRange.Name)
	assert.Equal(t, int64(10), req.AddNamedRange.NamedRange.Range.EndRowIndex)
}

func TestServer_handleNamedRangeDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the named range first", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: &sheets.Spreadsheet{
			NamedRanges: []*sheets.NamedRange{{Name: "Budget", NamedRangeId: "nr-9"}},
		}}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := NamedRangeDeleteInput{Name: "Budget"}
		_, output, err := server.handleNamedRangeDelete(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Deleted named range: Budget", output.Message)
		req := api.lastBatchRequest()
		assert.Equal(t, "nr-9", req.DeleteNamedRange.NamedRangeId)
	})

	t.Run("unknown name aborts before mutation", func(t *testing.T) {
		api := &mockSheetsAPI{}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, _, err := server.handleNamedRangeDelete(ctx, nil, NamedRangeDeleteInput{Name: "Missing"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNamedRangeNotFound)
		assert.Empty(t, api.batchRequests)
	})
}

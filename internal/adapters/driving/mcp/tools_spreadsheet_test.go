package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
	"github.com/docugen-labs/docugen/internal/core/services"
)

func TestServer_handleSpreadsheetCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates spreadsheet and records it as current", func(t *testing.T) {
		api := &mockSheetsAPI{created: &sheets.Spreadsheet{
			SpreadsheetId:  "new-id",
			SpreadsheetUrl: "https://example.test/new-id",
		}}
		server, session := newTestServer(api, &mockDriveAPI{})

		input := SpreadsheetCreateInput{Title: "Budget", Sheets: []string{"Income", "Expenses"}}
		_, output, err := server.handleSpreadsheetCreate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "new-id", output.SpreadsheetID)
		assert.Equal(t, "Budget", output.Title)
		assert.Equal(t, "https://example.test/new-id", output.URL)
		assert.Equal(t, []string{"Income", "Expenses"}, output.Sheets)
		assert.Equal(t, "new-id", session.Current())
	})

	t.Run("defaults title and sheet list", func(t *testing.T) {
		api := &mockSheetsAPI{created: &sheets.Spreadsheet{SpreadsheetId: "new-id"}}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, output, err := server.handleSpreadsheetCreate(ctx, nil, SpreadsheetCreateInput{})

		require.NoError(t, err)
		assert.Equal(t, "New Spreadsheet", output.Title)
		assert.Equal(t, []string{"Sheet1"}, output.Sheets)
	})
}

func TestServer_handleSpreadsheetGetMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("maps metadata to output", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: &sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: "Budget"},
			Sheets: []*sheets.Sheet{{
				Properties: &sheets.SheetProperties{
					Title:          "Income",
					SheetId:        42,
					GridProperties: &sheets.GridProperties{RowCount: 500, ColumnCount: 12},
				},
			}},
			NamedRanges: []*sheets.NamedRange{{Name: "Totals"}, {}},
		}}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, output, err := server.handleSpreadsheetGetMetadata(ctx, nil, SpreadsheetGetMetadataInput{})

		require.NoError(t, err)
		assert.Equal(t, "Budget", output.Title)
		require.Len(t, output.Sheets, 1)
		assert.Equal(t, SheetInfo{Name: "Income", ID: 42, Rows: 500, Columns: 12}, output.Sheets[0])
		require.Len(t, output.NamedRanges, 2)
		assert.Equal(t, "Totals", output.NamedRanges[0].Name)
		assert.Equal(t, "Unnamed", output.NamedRanges[1].Name)
	})

	t.Run("fails without spreadsheet before any call", func(t *testing.T) {
		api := &mockSheetsAPI{}
		session := services.NewSession(api, &mockDriveAPI{})
		server, err := NewServer(&Ports{Session: session})
		require.NoError(t, err)

		_, _, err = server.handleSpreadsheetGetMetadata(ctx, nil, SpreadsheetGetMetadataInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSpreadsheet)
		assert.Zero(t, api.calls)
	})
}

func TestServer_handleSpreadsheetList(t *testing.T) {
	ctx := context.Background()

	t.Run("lists files with default limit", func(t *testing.T) {
		driveAPI := &mockDriveAPI{files: []*drive.File{{
			Id:           "f-1",
			Name:         "Budget",
			ModifiedTime: "2026-08-20T10:00:00Z",
			WebViewLink:  "https://example.test/f-1",
		}}}
		server, _ := newTestServer(&mockSheetsAPI{}, driveAPI)

		_, output, err := server.handleSpreadsheetList(ctx, nil, SpreadsheetListInput{})

		require.NoError(t, err)
		assert.Equal(t, int64(25), driveAPI.pageSize)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "f-1", output.Spreadsheets[0].SpreadsheetID)
		assert.Equal(t, "https://example.test/f-1", output.Spreadsheets[0].URL)
	})

	t.Run("honors explicit limit", func(t *testing.T) {
		driveAPI := &mockDriveAPI{}
		server, _ := newTestServer(&mockSheetsAPI{}, driveAPI)

		_, output, err := server.handleSpreadsheetList(ctx, nil, SpreadsheetListInput{Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, int64(5), driveAPI.pageSize)
		assert.Zero(t, output.Count)
	})
}

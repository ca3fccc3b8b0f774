package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

func TestMetadataResolver_SheetID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a sheet by name", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
		resolver := NewMetadataResolver(api)

		id, err := resolver.SheetID(ctx, "sp-1", "Data")

		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, []string{"sheets.properties"}, api.getFields)
	})

	t.Run("unknown sheet name", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		resolver := NewMetadataResolver(api)

		_, err := resolver.SheetID(ctx, "sp-1", "Missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSheetNotFound)
		assert.Contains(t, err.Error(), "Missing")
	})
}

func TestServer_gridRange(t *testing.T) {
	ctx := context.Background()

	t.Run("exact bounds from a closed range", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		gr, err := server.gridRange(ctx, "sp-1", "Data!B2:D10")

		require.NoError(t, err)
		assert.Equal(t, int64(1), gr.SheetId)
		assert.Equal(t, int64(1), gr.StartRowIndex)
		assert.Equal(t, int64(10), gr.EndRowIndex)
		assert.Equal(t, int64(1), gr.StartColumnIndex)
		assert.Equal(t, int64(4), gr.EndColumnIndex)
	})

	t.Run("open row bounds stay unset", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		gr, err := server.gridRange(ctx, "sp-1", "A:C")

		require.NoError(t, err)
		assert.Zero(t, gr.StartRowIndex)
		assert.Zero(t, gr.EndRowIndex)
		assert.Equal(t, int64(3), gr.EndColumnIndex)
	})

	t.Run("bare sheet name spans the whole sheet", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1", "Data")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		gr, err := server.gridRange(ctx, "sp-1", "Data")

		require.NoError(t, err)
		assert.Equal(t, int64(1), gr.SheetId)
		assert.Zero(t, gr.StartRowIndex)
		assert.Zero(t, gr.EndRowIndex)
		assert.Zero(t, gr.StartColumnIndex)
		assert.Zero(t, gr.EndColumnIndex)
	})

	t.Run("no lookup for a bare range", func(t *testing.T) {
		api := &mockSheetsAPI{}
		server, _ := newTestServer(api, &mockDriveAPI{})

		gr, err := server.gridRange(ctx, "sp-1", "A1:B2")

		require.NoError(t, err)
		assert.Zero(t, gr.SheetId)
		assert.Zero(t, api.calls)
	})

	t.Run("bounded range fills open dimensions", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		gr, err := server.boundedGridRange(ctx, "sp-1", "Sheet1")

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultRowCount, gr.EndRowIndex)
		assert.Equal(t, domain.DefaultColumnCount, gr.EndColumnIndex)
	})
}

func TestServer_namedRangeID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a named range", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: &sheets.Spreadsheet{
			NamedRanges: []*sheets.NamedRange{
				{Name: "Budget", NamedRangeId: "nr-1"},
			},
		}}
		server, _ := newTestServer(api, &mockDriveAPI{})

		id, err := server.namedRangeID(ctx, "sp-1", "Budget")

		require.NoError(t, err)
		assert.Equal(t, "nr-1", id)
	})

	t.Run("unknown named range", func(t *testing.T) {
		api := &mockSheetsAPI{}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, err := server.namedRangeID(ctx, "sp-1", "Missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNamedRangeNotFound)
	})
}

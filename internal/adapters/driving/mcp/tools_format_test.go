package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }

func TestServer_handleFormatCells(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit false is sent on the wire", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := FormatCellsInput{Range: "Sheet1!A1:B2", Bold: boolPtr(false)}
		_, _, err := server.handleFormatCells(ctx, nil, input)

		require.NoError(t, err)
		req := api.lastBatchRequest()
		require.NotNil(t, req.RepeatCell)
		tf := req.RepeatCell.Cell.UserEnteredFormat.TextFormat
		require.NotNil(t, tf)
		assert.False(t, tf.Bold)
		assert.Contains(t, tf.ForceSendFields, "Bold")
	})

	t.Run("unset fields leave text format nil", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := FormatCellsInput{Range: "Sheet1!A1", BgColor: "#FFFF00"}
		_, _, err := server.handleFormatCells(ctx, nil, input)

		require.NoError(t, err)
		req := api.lastBatchRequest()
		format := req.RepeatCell.Cell.UserEnteredFormat
		assert.Nil(t, format.TextFormat)
		require.NotNil(t, format.BackgroundColor)
		assert.InDelta(t, 1.0, format.BackgroundColor.Red, 0.001)
		assert.InDelta(t, 0.0, format.BackgroundColor.Blue, 0.001)
	})

	t.Run("combined text options", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		input := FormatCellsInput{
			Range:    "Sheet1!A1:C1",
			Bold:     boolPtr(true),
			Italic:   boolPtr(true),
			FontSize: int64Ptr(14),
			HAlign:   "CENTER",
		}
		_, output, err := server.handleFormatCells(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Applied formatting to Sheet1!A1:C1", output.Message)

		req := api.lastBatchRequest()
		format := req.RepeatCell.Cell.UserEnteredFormat
		assert.True(t, format.TextFormat.Bold)
		assert.True(t, format.TextFormat.Italic)
		assert.Equal(t, int64(14), format.TextFormat.FontSize)
		assert.Equal(t, "CENTER", format.HorizontalAlignment)
		assert.Equal(t, "userEnteredFormat", req.RepeatCell.Fields)
	})

	t.Run("invalid color", func(t *testing.T) {
		server, _ := newTestServer(&mockSheetsAPI{}, &mockDriveAPI{})

		input := FormatCellsInput{Range: "A1", BgColor: "yellow"}
		_, _, err := server.handleFormatCells(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidColor)
	})
}

func TestServer_handleBordersUpdate(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	_, _, err := server.handleBordersUpdate(ctx, nil, BordersUpdateInput{Range: "Sheet1!A1:B2"})

	require.NoError(t, err)
	req := api.lastBatchRequest()
	require.NotNil(t, req.UpdateBorders)
	assert.Equal(t, "SOLID", req.UpdateBorders.Top.Style)
	assert.Equal(t, int64(1), req.UpdateBorders.Top.Width)
	assert.NotNil(t, req.UpdateBorders.InnerHorizontal)
	assert.NotNil(t, req.UpdateBorders.InnerVertical)
	assert.InDelta(t, 0.0, req.UpdateBorders.Top.Color.Red, 0.001)
}

func TestServer_handleCellsMerge(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	_, output, err := server.handleCellsMerge(ctx, nil, CellsMergeInput{Range: "Sheet1!A1:C1"})

	require.NoError(t, err)
	assert.Equal(t, "Merged cells in Sheet1!A1:C1 using MERGE_ALL", output.Message)
	req := api.lastBatchRequest()
	assert.Equal(t, "MERGE_ALL", req.MergeCells.MergeType)
}

func TestServer_handleTextRotate(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	input := TextRotateInput{Range: "Sheet1!A1:A10", Angle: 0}
	_, _, err := server.handleTextRotate(ctx, nil, input)

	require.NoError(t, err)
	req := api.lastBatchRequest()
	rotation := req.RepeatCell.Cell.UserEnteredFormat.TextRotation
	assert.Zero(t, rotation.Angle)
	assert.Contains(t, rotation.ForceSendFields, "Angle")
	assert.Equal(t, "userEnteredFormat.textRotation", req.RepeatCell.Fields)
}

func TestServer_handleTextWrap(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	_, output, err := server.handleTextWrap(ctx, nil, TextWrapInput{Range: "Sheet1!A1:B2"})

	require.NoError(t, err)
	assert.Equal(t, "Set text wrapping to WRAP in Sheet1!A1:B2", output.Message)
	req := api.lastBatchRequest()
	assert.Equal(t, "WRAP", req.RepeatCell.Cell.UserEnteredFormat.WrapStrategy)
}

func TestServer_handleBandedRangeAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("default band colors", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, _, err := server.handleBandedRangeAdd(ctx, nil, BandedRangeAddInput{Range: "Sheet1!A1:D20"})

		require.NoError(t, err)
		req := api.lastBatchRequest()
		require.NotNil(t, req.AddBanding)
		props := req.AddBanding.BandedRange.RowProperties
		assert.InDelta(t, 0x42/255.0, props.HeaderColor.Red, 0.001)
		assert.InDelta(t, 1.0, props.FirstBandColor.Red, 0.001)
	})

	t.Run("open range gets default extents", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, _, err := server.handleBandedRangeAdd(ctx, nil, BandedRangeAddInput{Range: "Sheet1!A:D"})

		require.NoError(t, err)
		req := api.lastBatchRequest()
		gr := req.AddBanding.BandedRange.Range
		assert.Equal(t, domain.DefaultRowCount, gr.EndRowIndex)
		assert.Equal(t, int64(4), gr.EndColumnIndex)
	})
}

func TestServer_handleConditionalFormatAdd(t *testing.T) {
	ctx := context.Background()

	api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
	server, _ := newTestServer(api, &mockDriveAPI{})

	input := ConditionalFormatAddInput{
		Range:     "Sheet1!B2:B100",
		RuleType:  "NUMBER_GREATER",
		Condition: ConditionInput{Values: []any{100.0}},
		FormatOptions: map[string]any{
			"background_color": "#FF0000",
			"bold":             true,
		},
	}
	_, _, err := server.handleConditionalFormatAdd(ctx, nil, input)

	require.NoError(t, err)
	req := api.lastBatchRequest()
	require.NotNil(t, req.AddConditionalFormatRule)
	rule := req.AddConditionalFormatRule.Rule.BooleanRule
	assert.Equal(t, "NUMBER_GREATER", rule.Condition.Type)
	require.Len(t, rule.Condition.Values, 1)
	assert.Equal(t, "100", rule.Condition.Values[0].UserEnteredValue)
	assert.True(t, rule.Format.TextFormat.Bold)
	require.NotNil(t, rule.Format.BackgroundColor)
	assert.InDelta(t, 1.0, rule.Format.BackgroundColor.Red, 0.001)
}

func TestServer_handleConditionalFormatClear(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes one request per rule at index zero", func(t *testing.T) {
		meta := metadataWithSheets("Sheet1", "Data")
		meta.Sheets[1].ConditionalFormats = []*sheets.ConditionalFormatRule{{}, {}, {}}
		api := &mockSheetsAPI{metadata: meta}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, _, err := server.handleConditionalFormatClear(ctx, nil, SheetNameInput{SheetName: "Data"})

		require.NoError(t, err)
		require.Len(t, api.batchRequests, 1)
		reqs := api.batchRequests[0].Requests
		require.Len(t, reqs, 3)
		for _, req := range reqs {
			require.NotNil(t, req.DeleteConditionalFormatRule)
			assert.Equal(t, int64(1), req.DeleteConditionalFormatRule.SheetId)
			assert.Zero(t, req.DeleteConditionalFormatRule.Index)
		}
	})

	t.Run("no rules means no mutation", func(t *testing.T) {
		api := &mockSheetsAPI{metadata: metadataWithSheets("Sheet1")}
		server, _ := newTestServer(api, &mockDriveAPI{})

		_, output, err := server.handleConditionalFormatClear(ctx, nil, SheetNameInput{SheetName: "Sheet1"})

		require.NoError(t, err)
		assert.Empty(t, api.batchRequests)
		assert.Equal(t, "Cleared conditional formatting from 'Sheet1'", output.Message)
	})
}

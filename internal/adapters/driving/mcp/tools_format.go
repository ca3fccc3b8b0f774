package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

// FormatCellsInput is the input schema for the format_cells tool.
// Pointer fields distinguish "not requested" from explicit false/zero.
type FormatCellsInput struct {
	Range         string `json:"range" jsonschema:"A1 notation range"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
	Bold          *bool  `json:"bold,omitempty" jsonschema:"make text bold"`
	Italic        *bool  `json:"italic,omitempty" jsonschema:"make text italic"`
	FontSize      *int64 `json:"font_size,omitempty" jsonschema:"font size in points"`
	BgColor       string `json:"bg_color,omitempty" jsonschema:"background color (hex, e.g. '#FFFF00')"`
	TextColor     string `json:"text_color,omitempty" jsonschema:"text color (hex)"`
	HAlign        string `json:"h_align,omitempty" jsonschema:"horizontal alignment: LEFT, CENTER or RIGHT"`
	VAlign        string `json:"v_align,omitempty" jsonschema:"vertical alignment: TOP, MIDDLE or BOTTOM"`
}

// BordersUpdateInput is the input schema for the borders_update tool.
type BordersUpdateInput struct {
	Range         string `json:"range" jsonschema:"range to update borders (A1 notation)"`
	BorderStyle   string `json:"border_style,omitempty" jsonschema:"style of border: SOLID, DASHED or DOTTED (default SOLID)"`
	BorderWidth   int64  `json:"border_width,omitempty" jsonschema:"width of border in pixels (default 1)"`
	BorderColor   string `json:"border_color,omitempty" jsonschema:"color of border (hex, default '#000000')"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// CellsMergeInput is the input schema for the cells_merge tool.
type CellsMergeInput struct {
	Range         string `json:"range" jsonschema:"range to merge (A1 notation)"`
	MergeType     string `json:"merge_type,omitempty" jsonschema:"type of merge: MERGE_ALL, MERGE_ROWS or MERGE_COLUMNS (default MERGE_ALL)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// RangeInput is the shared input schema for tools operating on one range.
type RangeInput struct {
	Range         string `json:"range" jsonschema:"A1 notation range"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// TextRotateInput is the input schema for the text_rotate tool.
type TextRotateInput struct {
	Range         string `json:"range" jsonschema:"range to apply rotation (A1 notation)"`
	Angle         int64  `json:"angle" jsonschema:"rotation angle in degrees (-90 to 90)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// TextWrapInput is the input schema for the text_wrap tool.
type TextWrapInput struct {
	Range         string `json:"range" jsonschema:"range to apply wrapping (A1 notation)"`
	WrapStrategy  string `json:"wrap_strategy,omitempty" jsonschema:"OVERFLOW_CELL, CLIP or WRAP (default WRAP)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// BandedRangeAddInput is the input schema for the banded_range_add tool.
type BandedRangeAddInput struct {
	Range           string `json:"range" jsonschema:"range to band (A1 notation)"`
	HeaderColor     string `json:"header_color,omitempty" jsonschema:"header row color (hex, default '#4285F4')"`
	FirstBandColor  string `json:"first_band_color,omitempty" jsonschema:"first band color (hex, default '#FFFFFF')"`
	SecondBandColor string `json:"second_band_color,omitempty" jsonschema:"second band color (hex, default '#F8F9FA')"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// BandedRangeRemoveInput is the input schema for the banded_range_remove tool.
type BandedRangeRemoveInput struct {
	BandedRangeID int64  `json:"banded_range_id" jsonschema:"ID of the banded range to remove"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ConditionalFormatAddInput is the input schema for conditional_format_add.
type ConditionalFormatAddInput struct {
	Range         string         `json:"range" jsonschema:"range to apply formatting (A1 notation)"`
	RuleType      string         `json:"rule_type" jsonschema:"condition type (e.g. NUMBER_GREATER, TEXT_CONTAINS, CUSTOM_FORMULA)"`
	Condition     ConditionInput `json:"condition" jsonschema:"condition parameters"`
	FormatOptions map[string]any `json:"format_options" jsonschema:"cell format to apply when the condition holds"`
	SpreadsheetID string         `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ConditionInput carries the condition operand values.
type ConditionInput struct {
	Values []any `json:"values,omitempty" jsonschema:"condition operand values"`
}

func (s *Server) registerFormatTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "format_cells",
		Description: "Apply formatting to cells",
	}, s.handleFormatCells)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "borders_update",
		Description: "Update cell borders",
	}, s.handleBordersUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cells_merge",
		Description: "Merge cells in a range",
	}, s.handleCellsMerge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cells_unmerge",
		Description: "Unmerge cells in a range",
	}, s.handleCellsUnmerge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "text_rotate",
		Description: "Rotate text in cells",
	}, s.handleTextRotate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "text_wrap",
		Description: "Set text wrapping strategy",
	}, s.handleTextWrap)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "banded_range_add",
		Description: "Add banded range (alternating colors)",
	}, s.handleBandedRangeAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "banded_range_remove",
		Description: "Remove a banded range",
	}, s.handleBandedRangeRemove)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "conditional_format_add",
		Description: "Add a conditional formatting rule",
	}, s.handleConditionalFormatAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "conditional_format_clear",
		Description: "Clear all conditional formatting from a sheet",
	}, s.handleConditionalFormatClear)
}

func (s *Server) handleFormatCells(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormatCellsInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	format := &sheets.CellFormat{}
	textFormat := &sheets.TextFormat{}
	hasText := false

	if input.Bold != nil {
		textFormat.Bold = *input.Bold
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Bold")
		hasText = true
	}
	if input.Italic != nil {
		textFormat.Italic = *input.Italic
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Italic")
		hasText = true
	}
	if input.FontSize != nil {
		textFormat.FontSize = *input.FontSize
		hasText = true
	}
	if input.TextColor != "" {
		color, err := domain.ParseHexColor(input.TextColor)
		if err != nil {
			return nil, MessageOutput{}, err
		}
		textFormat.ForegroundColor = toAPIColor(color)
		hasText = true
	}
	if hasText {
		format.TextFormat = textFormat
	}
	if input.BgColor != "" {
		color, err := domain.ParseHexColor(input.BgColor)
		if err != nil {
			return nil, MessageOutput{}, err
		}
		format.BackgroundColor = toAPIColor(color)
	}
	format.HorizontalAlignment = input.HAlign
	format.VerticalAlignment = input.VAlign

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  gr,
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: "userEnteredFormat",
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Applied formatting to %s", input.Range)}, nil
}

func (s *Server) handleBordersUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BordersUpdateInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	style := input.BorderStyle
	if style == "" {
		style = "SOLID"
	}
	width := input.BorderWidth
	if width <= 0 {
		width = 1
	}
	hex := input.BorderColor
	if hex == "" {
		hex = "#000000"
	}
	color, err := domain.ParseHexColor(hex)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	border := &sheets.Border{
		Style: style,
		Width: width,
		Color: toAPIColor(color),
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		UpdateBorders: &sheets.UpdateBordersRequest{
			Range:           gr,
			Top:             border,
			Bottom:          border,
			Left:            border,
			Right:           border,
			InnerHorizontal: border,
			InnerVertical:   border,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Updated borders for %s", input.Range)}, nil
}

func (s *Server) handleCellsMerge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CellsMergeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	mergeType := input.MergeType
	if mergeType == "" {
		mergeType = "MERGE_ALL"
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		MergeCells: &sheets.MergeCellsRequest{
			Range:     gr,
			MergeType: mergeType,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Merged cells in %s using %s", input.Range, mergeType)}, nil
}

func (s *Server) handleCellsUnmerge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		UnmergeCells: &sheets.UnmergeCellsRequest{Range: gr},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Unmerged cells in %s", input.Range)}, nil
}

func (s *Server) handleTextRotate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TextRotateInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gr,
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextRotation: &sheets.TextRotation{
						Angle:           input.Angle,
						ForceSendFields: []string{"Angle"},
					},
				},
			},
			Fields: "userEnteredFormat.textRotation",
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Rotated text in %s by %d degrees", input.Range, input.Angle)}, nil
}

func (s *Server) handleTextWrap(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TextWrapInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	strategy := input.WrapStrategy
	if strategy == "" {
		strategy = "WRAP"
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gr,
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{WrapStrategy: strategy},
			},
			Fields: "userEnteredFormat.wrapStrategy",
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Set text wrapping to %s in %s", strategy, input.Range)}, nil
}

func (s *Server) handleBandedRangeAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BandedRangeAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	headerColor, err := parseHexOrDefault(input.HeaderColor, "#4285F4")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	firstColor, err := parseHexOrDefault(input.FirstBandColor, "#FFFFFF")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	secondColor, err := parseHexOrDefault(input.SecondBandColor, "#F8F9FA")
	if err != nil {
		return nil, MessageOutput{}, err
	}

	gr, err := s.boundedGridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		AddBanding: &sheets.AddBandingRequest{
			BandedRange: &sheets.BandedRange{
				Range: gr,
				RowProperties: &sheets.BandingProperties{
					HeaderColor:     headerColor,
					FirstBandColor:  firstColor,
					SecondBandColor: secondColor,
				},
			},
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added banded range to %s", input.Range)}, nil
}

func (s *Server) handleBandedRangeRemove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BandedRangeRemoveInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		DeleteBanding: &sheets.DeleteBandingRequest{BandedRangeId: input.BandedRangeID},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Removed banded range with ID: %d", input.BandedRangeID)}, nil
}

func (s *Server) handleConditionalFormatAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConditionalFormatAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	condition := &sheets.BooleanCondition{Type: input.RuleType}
	for _, v := range input.Condition.Values {
		condition.Values = append(condition.Values, &sheets.ConditionValue{
			UserEnteredValue: fmt.Sprint(v),
		})
	}

	format, err := cellFormatFromOptions(input.FormatOptions)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{gr},
				BooleanRule: &sheets.BooleanRule{
					Condition: condition,
					Format:    format,
				},
			},
			Index: 0,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added conditional formatting to %s", input.Range)}, nil
}

func (s *Server) handleConditionalFormatClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetNameInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	sheetID, err := s.ports.Resolver.SheetID(ctx, id, input.SheetName)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	meta, err := s.ports.Session.Sheets.Get(ctx, id, "sheets.properties,sheets.conditionalFormats")
	if err != nil {
		return nil, MessageOutput{}, err
	}

	// Deleting at index 0 repeatedly removes all rules: indices shift
	// down after each delete within the batch.
	var reqs []*sheets.Request
	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil || sheet.Properties.SheetId != sheetID {
			continue
		}
		for range sheet.ConditionalFormats {
			reqs = append(reqs, &sheets.Request{
				DeleteConditionalFormatRule: &sheets.DeleteConditionalFormatRuleRequest{
					SheetId: sheetID,
					Index:   0,
				},
			})
		}
	}

	if len(reqs) > 0 {
		if _, err := s.batchUpdate(ctx, id, reqs...); err != nil {
			return nil, MessageOutput{}, err
		}
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cleared conditional formatting from '%s'", input.SheetName)}, nil
}

// toAPIColor converts a domain color to the API representation.
func toAPIColor(c domain.Color) *sheets.Color {
	return &sheets.Color{
		Red:             c.Red,
		Green:           c.Green,
		Blue:            c.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}

func parseHexOrDefault(hex, fallback string) (*sheets.Color, error) {
	if hex == "" {
		hex = fallback
	}
	c, err := domain.ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	return toAPIColor(c), nil
}

// cellFormatFromOptions builds a CellFormat from loosely typed format
// options: background_color, text_color, bold, italic.
func cellFormatFromOptions(options map[string]any) (*sheets.CellFormat, error) {
	format := &sheets.CellFormat{}
	textFormat := &sheets.TextFormat{}
	hasText := false

	if hex, ok := options["background_color"].(string); ok && hex != "" {
		c, err := domain.ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		format.BackgroundColor = toAPIColor(c)
	}
	if hex, ok := options["text_color"].(string); ok && hex != "" {
		c, err := domain.ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		textFormat.ForegroundColor = toAPIColor(c)
		hasText = true
	}
	if bold, ok := options["bold"].(bool); ok {
		textFormat.Bold = bold
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Bold")
		hasText = true
	}
	if italic, ok := options["italic"].(bool); ok {
		textFormat.Italic = italic
		textFormat.ForceSendFields = append(textFormat.ForceSendFields, "Italic")
		hasText = true
	}
	if hasText {
		format.TextFormat = textFormat
	}
	return format, nil
}

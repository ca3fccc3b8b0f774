package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

// RowsInsertInput is the input schema for the rows_insert tool.
type RowsInsertInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	StartIndex    int64  `json:"start_index" jsonschema:"where to insert rows (0-based)"`
	NumRows       int64  `json:"num_rows,omitempty" jsonschema:"number of rows to insert (default 1)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ColumnsInsertInput is the input schema for the columns_insert tool.
type ColumnsInsertInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	StartIndex    int64  `json:"start_index" jsonschema:"where to insert columns (0-based)"`
	NumColumns    int64  `json:"num_columns,omitempty" jsonschema:"number of columns to insert (default 1)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// RowSpanInput addresses a 1-based inclusive row interval in a sheet.
type RowSpanInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	StartRow      int64  `json:"start_row" jsonschema:"starting row (1-based)"`
	EndRow        int64  `json:"end_row" jsonschema:"ending row (1-based, inclusive)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ColumnSpanInput addresses an inclusive column letter interval in a sheet.
type ColumnSpanInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	StartColumn   string `json:"start_column" jsonschema:"starting column letter (A, B, C...)"`
	EndColumn     string `json:"end_column" jsonschema:"ending column letter (inclusive)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// RowResizeInput is the input schema for the row_resize tool.
type RowResizeInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	Row           int64  `json:"row" jsonschema:"row number (1-based)"`
	Height        int64  `json:"height" jsonschema:"height in pixels"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ColumnResizeInput is the input schema for the column_resize tool.
type ColumnResizeInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	Column        string `json:"column" jsonschema:"column letter (A, B, C...)"`
	Width         int64  `json:"width" jsonschema:"width in pixels"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

func (s *Server) registerDimensionTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rows_insert",
		Description: "Insert rows into a sheet",
	}, s.handleRowsInsert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "columns_insert",
		Description: "Insert columns into a sheet",
	}, s.handleColumnsInsert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rows_hide",
		Description: "Hide rows in a sheet",
	}, s.handleRowsHide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rows_unhide",
		Description: "Unhide rows in a sheet",
	}, s.handleRowsUnhide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "columns_hide",
		Description: "Hide columns in a sheet",
	}, s.handleColumnsHide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "columns_unhide",
		Description: "Unhide columns in a sheet",
	}, s.handleColumnsUnhide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "row_resize",
		Description: "Resize a row height",
	}, s.handleRowResize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "column_resize",
		Description: "Resize a column width",
	}, s.handleColumnResize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "columns_autofit",
		Description: "Auto-resize columns to fit content",
	}, s.handleColumnsAutofit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rows_group",
		Description: "Group rows together",
	}, s.handleRowsGroup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "columns_group",
		Description: "Group columns together",
	}, s.handleColumnsGroup)
}

// dimensionRange builds a DimensionRange for the named sheet.
func (s *Server) dimensionRange(
	ctx context.Context,
	spreadsheetID, sheetName, dimension string,
	startIndex, endIndex int64,
) (*sheets.DimensionRange, error) {
	sheetID, err := s.ports.Resolver.SheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return nil, err
	}
	return &sheets.DimensionRange{
		SheetId:         sheetID,
		Dimension:       dimension,
		StartIndex:      startIndex,
		EndIndex:        endIndex,
		ForceSendFields: []string{"StartIndex"},
	}, nil
}

// columnSpan converts inclusive column letters to a zero-based half-open
// index interval.
func columnSpan(startColumn, endColumn string) (int64, int64, error) {
	start, err := domain.ColumnIndex(startColumn)
	if err != nil {
		return 0, 0, err
	}
	end, err := domain.ColumnIndex(endColumn)
	if err != nil {
		return 0, 0, err
	}
	return start, end + 1, nil
}

func (s *Server) handleRowsInsert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowsInsertInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	numRows := input.NumRows
	if numRows <= 0 {
		numRows = 1
	}

	dr, err := s.dimensionRange(ctx, id, input.SheetName, "ROWS", input.StartIndex, input.StartIndex+numRows)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range:             dr,
			InheritFromBefore: true,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Inserted %d row(s) at position %d in '%s'",
		numRows, input.StartIndex+1, input.SheetName)}, nil
}

func (s *Server) handleColumnsInsert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnsInsertInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	numColumns := input.NumColumns
	if numColumns <= 0 {
		numColumns = 1
	}

	dr, err := s.dimensionRange(ctx, id, input.SheetName, "COLUMNS", input.StartIndex, input.StartIndex+numColumns)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range:             dr,
			InheritFromBefore: true,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Inserted %d column(s) at position %s in '%s'",
		numColumns, domain.ColumnLetters(input.StartIndex), input.SheetName)}, nil
}

// setDimensionHidden hides or shows a dimension interval.
func (s *Server) setDimensionHidden(
	ctx context.Context,
	spreadsheetID, sheetName, dimension string,
	startIndex, endIndex int64,
	hidden bool,
) error {
	dr, err := s.dimensionRange(ctx, spreadsheetID, sheetName, dimension, startIndex, endIndex)
	if err != nil {
		return err
	}

	_, err = s.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: dr,
			Properties: &sheets.DimensionProperties{
				HiddenByUser:    hidden,
				ForceSendFields: []string{"HiddenByUser"},
			},
			Fields: "hiddenByUser",
		},
	})
	return err
}

func (s *Server) handleRowsHide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.setDimensionHidden(ctx, id, input.SheetName, "ROWS", input.StartRow-1, input.EndRow, true); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Hidden rows %d to %d in '%s'",
		input.StartRow, input.EndRow, input.SheetName)}, nil
}

func (s *Server) handleRowsUnhide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.setDimensionHidden(ctx, id, input.SheetName, "ROWS", input.StartRow-1, input.EndRow, false); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Unhidden rows %d to %d in '%s'",
		input.StartRow, input.EndRow, input.SheetName)}, nil
}

func (s *Server) handleColumnsHide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	start, end, err := columnSpan(input.StartColumn, input.EndColumn)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.setDimensionHidden(ctx, id, input.SheetName, "COLUMNS", start, end, true); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Hidden columns %s to %s in '%s'",
		input.StartColumn, input.EndColumn, input.SheetName)}, nil
}

func (s *Server) handleColumnsUnhide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	start, end, err := columnSpan(input.StartColumn, input.EndColumn)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.setDimensionHidden(ctx, id, input.SheetName, "COLUMNS", start, end, false); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Unhidden columns %s to %s in '%s'",
		input.StartColumn, input.EndColumn, input.SheetName)}, nil
}

// resizeDimension sets the pixel size of a dimension interval.
func (s *Server) resizeDimension(
	ctx context.Context,
	spreadsheetID, sheetName, dimension string,
	startIndex, endIndex, pixelSize int64,
) error {
	dr, err := s.dimensionRange(ctx, spreadsheetID, sheetName, dimension, startIndex, endIndex)
	if err != nil {
		return err
	}

	_, err = s.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range:      dr,
			Properties: &sheets.DimensionProperties{PixelSize: pixelSize},
			Fields:     "pixelSize",
		},
	})
	return err
}

func (s *Server) handleRowResize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowResizeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.resizeDimension(ctx, id, input.SheetName, "ROWS", input.Row-1, input.Row, input.Height); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Resized row %d to %dpx in '%s'",
		input.Row, input.Height, input.SheetName)}, nil
}

func (s *Server) handleColumnResize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnResizeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	col, err := domain.ColumnIndex(input.Column)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.resizeDimension(ctx, id, input.SheetName, "COLUMNS", col, col+1, input.Width); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Resized column %s to %dpx in '%s'",
		input.Column, input.Width, input.SheetName)}, nil
}

func (s *Server) handleColumnsAutofit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	start, end, err := columnSpan(input.StartColumn, input.EndColumn)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	dr, err := s.dimensionRange(ctx, id, input.SheetName, "COLUMNS", start, end)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{Dimensions: dr},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Auto-fitted columns %s to %s in '%s'",
		input.StartColumn, input.EndColumn, input.SheetName)}, nil
}

func (s *Server) handleRowsGroup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	dr, err := s.dimensionRange(ctx, id, input.SheetName, "ROWS", input.StartRow-1, input.EndRow)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		AddDimensionGroup: &sheets.AddDimensionGroupRequest{Range: dr},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Grouped rows %d to %d in '%s'",
		input.StartRow, input.EndRow, input.SheetName)}, nil
}

func (s *Server) handleColumnsGroup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ColumnSpanInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	start, end, err := columnSpan(input.StartColumn, input.EndColumn)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	dr, err := s.dimensionRange(ctx, id, input.SheetName, "COLUMNS", start, end)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		AddDimensionGroup: &sheets.AddDimensionGroupRequest{Range: dr},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Grouped columns %s to %s in '%s'",
		input.StartColumn, input.EndColumn, input.SheetName)}, nil
}

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

// SheetAddInput is the input schema for the sheet_add tool.
type SheetAddInput struct {
	Title         string `json:"title" jsonschema:"title of the new sheet"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
	Rows          int64  `json:"rows,omitempty" jsonschema:"number of rows (default 1000)"`
	Columns       int64  `json:"columns,omitempty" jsonschema:"number of columns (default 26)"`
}

// SheetAddOutput describes the created sheet.
type SheetAddOutput struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
	Rows    int64  `json:"rows"`
	Columns int64  `json:"columns"`
}

// SheetDeleteInput is the input schema for the sheet_delete tool.
type SheetDeleteInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"name of the sheet to delete"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// SheetDuplicateInput is the input schema for the sheet_duplicate tool.
type SheetDuplicateInput struct {
	SourceSheetName string `json:"source_sheet_name" jsonschema:"name of the sheet to duplicate"`
	NewSheetName    string `json:"new_sheet_name" jsonschema:"name for the duplicate"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// SheetDuplicateOutput describes the duplicated sheet.
type SheetDuplicateOutput struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
}

// SheetRenameInput is the input schema for the sheet_rename tool.
type SheetRenameInput struct {
	OldName       string `json:"old_name" jsonschema:"current sheet name"`
	NewName       string `json:"new_name" jsonschema:"new sheet name"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// SheetNameInput is the shared input schema for tools that address a
// whole sheet by name.
type SheetNameInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// SheetMoveInput is the input schema for the sheet_move tool.
type SheetMoveInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet to move"`
	NewIndex      int64  `json:"new_index" jsonschema:"new position (0-based)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// FreezeRowsInput is the input schema for the freeze_rows tool.
type FreezeRowsInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	NumRows       int64  `json:"num_rows" jsonschema:"number of rows to freeze"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// FreezeColumnsInput is the input schema for the freeze_columns tool.
type FreezeColumnsInput struct {
	SheetName     string `json:"sheet_name" jsonschema:"sheet name"`
	NumColumns    int64  `json:"num_columns" jsonschema:"number of columns to freeze"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

func (s *Server) registerSheetTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_add",
		Description: "Add a new sheet to a spreadsheet",
	}, s.handleSheetAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_delete",
		Description: "Delete a sheet from a spreadsheet",
	}, s.handleSheetDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_duplicate",
		Description: "Duplicate an existing sheet",
	}, s.handleSheetDuplicate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_rename",
		Description: "Rename a sheet",
	}, s.handleSheetRename)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_hide",
		Description: "Hide a sheet",
	}, s.handleSheetHide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_unhide",
		Description: "Unhide a sheet",
	}, s.handleSheetUnhide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sheet_move",
		Description: "Move a sheet to a new position",
	}, s.handleSheetMove)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "freeze_rows",
		Description: "Freeze rows at the top of a sheet",
	}, s.handleFreezeRows)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "freeze_columns",
		Description: "Freeze columns at the left of a sheet",
	}, s.handleFreezeColumns)
}

func (s *Server) handleSheetAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetAddInput,
) (*mcp.CallToolResult, SheetAddOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, SheetAddOutput{}, err
	}

	rows := input.Rows
	if rows <= 0 {
		rows = domain.DefaultRowCount
	}
	columns := input.Columns
	if columns <= 0 {
		columns = domain.DefaultColumnCount
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: input.Title,
				GridProperties: &sheets.GridProperties{
					RowCount:    rows,
					ColumnCount: columns,
				},
			},
		},
	})
	if err != nil {
		return nil, SheetAddOutput{}, err
	}

	output := SheetAddOutput{Title: input.Title, Rows: rows, Columns: columns}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		if props := resp.Replies[0].AddSheet.Properties; props != nil {
			output.SheetID = props.SheetId
			output.Title = props.Title
		}
	}
	return nil, output, nil
}

func (s *Server) handleSheetDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetDeleteInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	sheetID, err := s.ports.Resolver.SheetID(ctx, id, input.SheetName)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{SheetId: sheetID},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Deleted sheet: %s", input.SheetName)}, nil
}

func (s *Server) handleSheetDuplicate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetDuplicateInput,
) (*mcp.CallToolResult, SheetDuplicateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, SheetDuplicateOutput{}, err
	}

	sourceID, err := s.ports.Resolver.SheetID(ctx, id, input.SourceSheetName)
	if err != nil {
		return nil, SheetDuplicateOutput{}, err
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{
		DuplicateSheet: &sheets.DuplicateSheetRequest{
			SourceSheetId: sourceID,
			NewSheetName:  input.NewSheetName,
		},
	})
	if err != nil {
		return nil, SheetDuplicateOutput{}, err
	}

	output := SheetDuplicateOutput{Title: input.NewSheetName}
	if len(resp.Replies) > 0 && resp.Replies[0].DuplicateSheet != nil {
		if props := resp.Replies[0].DuplicateSheet.Properties; props != nil {
			output.SheetID = props.SheetId
			output.Title = props.Title
		}
	}
	return nil, output, nil
}

// updateSheetProperties applies a single-field sheet property change for
// the named sheet.
func (s *Server) updateSheetProperties(
	ctx context.Context,
	spreadsheetID, sheetName string,
	props func(sheetID int64) *sheets.SheetProperties,
	fields string,
) error {
	sheetID, err := s.ports.Resolver.SheetID(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}

	_, err = s.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: props(sheetID),
			Fields:     fields,
		},
	})
	return err
}

func (s *Server) handleSheetRename(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetRenameInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.OldName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{SheetId: sheetID, Title: input.NewName}
	}, "title")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Renamed sheet from '%s' to '%s'", input.OldName, input.NewName)}, nil
}

func (s *Server) handleSheetHide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetNameInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.SheetName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{SheetId: sheetID, Hidden: true}
	}, "hidden")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Hidden sheet: %s", input.SheetName)}, nil
}

func (s *Server) handleSheetUnhide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetNameInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.SheetName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{
			SheetId:         sheetID,
			Hidden:          false,
			ForceSendFields: []string{"Hidden"},
		}
	}, "hidden")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Unhidden sheet: %s", input.SheetName)}, nil
}

func (s *Server) handleSheetMove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SheetMoveInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.SheetName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{
			SheetId:         sheetID,
			Index:           input.NewIndex,
			ForceSendFields: []string{"Index"},
		}
	}, "index")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Moved sheet '%s' to position %d", input.SheetName, input.NewIndex)}, nil
}

func (s *Server) handleFreezeRows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FreezeRowsInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.SheetName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{
			SheetId: sheetID,
			GridProperties: &sheets.GridProperties{
				FrozenRowCount:  input.NumRows,
				ForceSendFields: []string{"FrozenRowCount"},
			},
		}
	}, "gridProperties.frozenRowCount")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Froze %d row(s) in '%s'", input.NumRows, input.SheetName)}, nil
}

func (s *Server) handleFreezeColumns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FreezeColumnsInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	err = s.updateSheetProperties(ctx, id, input.SheetName, func(sheetID int64) *sheets.SheetProperties {
		return &sheets.SheetProperties{
			SheetId: sheetID,
			GridProperties: &sheets.GridProperties{
				FrozenColumnCount: input.NumColumns,
				ForceSendFields:   []string{"FrozenColumnCount"},
			},
		}
	}, "gridProperties.frozenColumnCount")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Froze %d column(s) in '%s'", input.NumColumns, input.SheetName)}, nil
}

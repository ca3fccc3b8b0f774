package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"
)

// SpreadsheetCreateInput is the input schema for the spreadsheet_create tool.
type SpreadsheetCreateInput struct {
	Title  string   `json:"title,omitempty" jsonschema:"title of the new spreadsheet (default 'New Spreadsheet')"`
	Sheets []string `json:"sheets,omitempty" jsonschema:"list of sheet names to create (default ['Sheet1'])"`
}

// SpreadsheetCreateOutput describes the created spreadsheet.
type SpreadsheetCreateOutput struct {
	SpreadsheetID string   `json:"spreadsheet_id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Sheets        []string `json:"sheets"`
}

// SpreadsheetGetMetadataInput is the input schema for spreadsheet_get_metadata.
type SpreadsheetGetMetadataInput struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// SheetInfo summarizes one sheet within a spreadsheet.
type SheetInfo struct {
	Name    string `json:"name"`
	ID      int64  `json:"id"`
	Rows    int64  `json:"rows"`
	Columns int64  `json:"columns"`
}

// NamedRangeInfo summarizes one named range.
type NamedRangeInfo struct {
	Name string `json:"name"`
}

// SpreadsheetMetadataOutput is the output schema for spreadsheet_get_metadata.
type SpreadsheetMetadataOutput struct {
	Title       string           `json:"title"`
	Sheets      []SheetInfo      `json:"sheets"`
	NamedRanges []NamedRangeInfo `json:"namedRanges"`
}

// SpreadsheetListInput is the input schema for the spreadsheet_list tool.
type SpreadsheetListInput struct {
	Limit int64 `json:"limit,omitempty" jsonschema:"maximum number of spreadsheets to return (default 25)"`
}

// SpreadsheetFileInfo summarizes one spreadsheet file in Drive.
type SpreadsheetFileInfo struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Name          string `json:"name"`
	ModifiedTime  string `json:"modified_time"`
	URL           string `json:"url"`
}

// SpreadsheetListOutput is the output schema for the spreadsheet_list tool.
type SpreadsheetListOutput struct {
	Spreadsheets []SpreadsheetFileInfo `json:"spreadsheets"`
	Count        int                   `json:"count"`
}

func (s *Server) registerSpreadsheetTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheet_create",
		Description: "Create a new Google Sheets spreadsheet",
	}, s.handleSpreadsheetCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheet_get_metadata",
		Description: "Get spreadsheet metadata including sheets, properties, and named ranges",
	}, s.handleSpreadsheetGetMetadata)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "spreadsheet_list",
		Description: "List spreadsheets visible to the authenticated user, most recently modified first",
	}, s.handleSpreadsheetList)
}

// handleSpreadsheetCreate creates a spreadsheet and records it as the
// current spreadsheet for subsequent calls.
func (s *Server) handleSpreadsheetCreate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetCreateInput,
) (*mcp.CallToolResult, SpreadsheetCreateOutput, error) {
	title := input.Title
	if title == "" {
		title = "New Spreadsheet"
	}
	sheetNames := input.Sheets
	if len(sheetNames) == 0 {
		sheetNames = []string{"Sheet1"}
	}

	body := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetNames {
		body.Sheets = append(body.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	created, err := s.ports.Session.Sheets.Create(ctx, body)
	if err != nil {
		return nil, SpreadsheetCreateOutput{}, err
	}

	s.ports.Session.SetCurrent(created.SpreadsheetId)

	return nil, SpreadsheetCreateOutput{
		SpreadsheetID: created.SpreadsheetId,
		Title:         title,
		URL:           created.SpreadsheetUrl,
		Sheets:        sheetNames,
	}, nil
}

func (s *Server) handleSpreadsheetGetMetadata(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetGetMetadataInput,
) (*mcp.CallToolResult, SpreadsheetMetadataOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, SpreadsheetMetadataOutput{}, err
	}

	meta, err := s.ports.Session.Sheets.Get(ctx, id, "properties,sheets,namedRanges")
	if err != nil {
		return nil, SpreadsheetMetadataOutput{}, err
	}

	output := SpreadsheetMetadataOutput{
		Sheets:      []SheetInfo{},
		NamedRanges: []NamedRangeInfo{},
	}
	if meta.Properties != nil {
		output.Title = meta.Properties.Title
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil {
			continue
		}
		info := SheetInfo{
			Name: sheet.Properties.Title,
			ID:   sheet.Properties.SheetId,
		}
		if grid := sheet.Properties.GridProperties; grid != nil {
			info.Rows = grid.RowCount
			info.Columns = grid.ColumnCount
		}
		output.Sheets = append(output.Sheets, info)
	}
	for _, nr := range meta.NamedRanges {
		name := nr.Name
		if name == "" {
			name = "Unnamed"
		}
		output.NamedRanges = append(output.NamedRanges, NamedRangeInfo{Name: name})
	}

	return nil, output, nil
}

func (s *Server) handleSpreadsheetList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SpreadsheetListInput,
) (*mcp.CallToolResult, SpreadsheetListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 25
	}

	files, err := s.ports.Session.Drive.ListSpreadsheets(ctx, limit)
	if err != nil {
		return nil, SpreadsheetListOutput{}, err
	}

	output := SpreadsheetListOutput{
		Spreadsheets: make([]SpreadsheetFileInfo, len(files)),
		Count:        len(files),
	}
	for i, f := range files {
		output.Spreadsheets[i] = SpreadsheetFileInfo{
			SpreadsheetID: f.Id,
			Name:          f.Name,
			ModifiedTime:  f.ModifiedTime,
			URL:           f.WebViewLink,
		}
	}

	return nil, output, nil
}

package mcp

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

// ChartPosition anchors a chart overlay at a zero-based cell coordinate.
type ChartPosition struct {
	Row    int64 `json:"row" jsonschema:"anchor row (zero-based)"`
	Column int64 `json:"column" jsonschema:"anchor column (zero-based)"`
}

// ChartCreateInput is the input schema for the chart_create tool.
type ChartCreateInput struct {
	DataRange     string         `json:"data_range" jsonschema:"data range in A1 notation"`
	ChartType     string         `json:"chart_type,omitempty" jsonschema:"chart type: LINE, BAR, COLUMN, PIE, SCATTER (default COLUMN)"`
	Title         string         `json:"title,omitempty" jsonschema:"chart title (default 'Chart')"`
	Position      *ChartPosition `json:"position,omitempty" jsonschema:"anchor cell for the chart (default row 0, column 5)"`
	SpreadsheetID string         `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ChartCreateOutput describes the created chart.
type ChartCreateOutput struct {
	ChartID int64  `json:"chartId,omitempty"`
	Title   string `json:"title"`
	Type    string `json:"type"`
}

// PivotValueSpec names a source field and the aggregation applied to it.
type PivotValueSpec struct {
	Field    string `json:"field,omitempty" jsonschema:"source field name"`
	Function string `json:"function,omitempty" jsonschema:"aggregation function (default SUM)"`
}

// PivotTableCreateInput is the input schema for the pivot_table_create tool.
type PivotTableCreateInput struct {
	SourceRange   string           `json:"source_range" jsonschema:"source data range (A1 notation)"`
	TargetSheet   string           `json:"target_sheet" jsonschema:"sheet to place the pivot table on"`
	Rows          []string         `json:"rows" jsonschema:"fields for rows"`
	Columns       []string         `json:"columns" jsonschema:"fields for columns"`
	Values        []PivotValueSpec `json:"values" jsonschema:"fields for values with aggregation functions"`
	SpreadsheetID string           `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// PivotTableCreateOutput echoes the pivot table layout that was created.
type PivotTableCreateOutput struct {
	Source  string           `json:"source"`
	Target  string           `json:"target"`
	Rows    []string         `json:"rows"`
	Columns []string         `json:"columns"`
	Values  []PivotValueSpec `json:"values"`
}

// FindReplaceInput is the input schema for the find_replace tool.
type FindReplaceInput struct {
	Find            string `json:"find" jsonschema:"text to find"`
	Replace         string `json:"replace" jsonschema:"text to replace with"`
	SheetName       string `json:"sheet_name,omitempty" jsonschema:"specific sheet, or all sheets when omitted"`
	MatchCase       bool   `json:"match_case,omitempty" jsonschema:"case sensitive search"`
	MatchEntireCell bool   `json:"match_entire_cell,omitempty" jsonschema:"match entire cell contents"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// FindReplaceOutput reports how many cells changed.
type FindReplaceOutput struct {
	OccurrencesChanged int64  `json:"occurrencesChanged"`
	Find               string `json:"find"`
	Replace            string `json:"replace"`
}

// SortSpec orders one column of a sorted range.
type SortSpec struct {
	Column int64  `json:"column,omitempty" jsonschema:"zero-based column index within the range"`
	Order  string `json:"order,omitempty" jsonschema:"ASCENDING or DESCENDING (default ASCENDING)"`
}

// RangeSortInput is the input schema for the range_sort tool.
type RangeSortInput struct {
	Range         string     `json:"range" jsonschema:"range to sort (A1 notation); the first row is treated as a header"`
	SortSpecs     []SortSpec `json:"sort_specs" jsonschema:"sort specifications, applied in order"`
	SpreadsheetID string     `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// RangeCopyPasteInput is the input schema for the range_copy_paste tool.
type RangeCopyPasteInput struct {
	SourceRange   string `json:"source_range" jsonschema:"source range (A1 notation)"`
	TargetRange   string `json:"target_range" jsonschema:"target range (A1 notation)"`
	PasteType     string `json:"paste_type,omitempty" jsonschema:"type of paste: PASTE_NORMAL, PASTE_VALUES, PASTE_FORMAT (default PASTE_NORMAL)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// RangePairInput addresses a source range and a target range.
type RangePairInput struct {
	SourceRange   string `json:"source_range" jsonschema:"source range (A1 notation)"`
	TargetRange   string `json:"target_range" jsonschema:"target range (A1 notation)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// MetadataCreateInput is the input schema for the metadata_create tool.
type MetadataCreateInput struct {
	Key           string `json:"key" jsonschema:"metadata key"`
	Value         string `json:"value" jsonschema:"metadata value"`
	Location      string `json:"location" jsonschema:"location (sheet name or range)"`
	Visibility    string `json:"visibility,omitempty" jsonschema:"DOCUMENT or PROJECT (default DOCUMENT)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// MetadataCreateOutput echoes the created metadata entry.
type MetadataCreateOutput struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	Location   string `json:"location"`
	Visibility string `json:"visibility"`
}

// MetadataSearchInput is the input schema for the metadata_search tool.
type MetadataSearchInput struct {
	Key           string `json:"key,omitempty" jsonschema:"metadata key to search"`
	Value         string `json:"value,omitempty" jsonschema:"metadata value to search"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// MetadataEntry is one matched developer metadata record.
type MetadataEntry struct {
	MetadataID int64  `json:"metadataId"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	Visibility string `json:"visibility"`
}

// MetadataSearchOutput lists the matched metadata records.
type MetadataSearchOutput struct {
	Metadata []MetadataEntry `json:"metadata"`
}

// CSVImportInput is the input schema for the csv_import tool.
type CSVImportInput struct {
	CSVData       string `json:"csv_data" jsonschema:"CSV formatted data"`
	SheetName     string `json:"sheet_name,omitempty" jsonschema:"sheet to import into, created when absent (default 'Imported Data')"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// CSVImportOutput reports the imported extent.
type CSVImportOutput struct {
	Sheet           string `json:"sheet"`
	RowsImported    int    `json:"rows_imported"`
	ColumnsImported int    `json:"columns_imported"`
}

// CellInput addresses a single cell.
type CellInput struct {
	Cell          string `json:"cell" jsonschema:"cell location (A1 notation)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// NoteAddInput is the input schema for the note_add tool.
type NoteAddInput struct {
	Cell          string `json:"cell" jsonschema:"cell location (A1 notation)"`
	Note          string `json:"note" jsonschema:"note text"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

func (s *Server) registerDataTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chart_create",
		Description: "Create a chart in a spreadsheet",
	}, s.handleChartCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pivot_table_create",
		Description: "Create a pivot table",
	}, s.handlePivotTableCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_replace",
		Description: "Find and replace text in a spreadsheet",
	}, s.handleFindReplace)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "range_sort",
		Description: "Sort data in a range",
	}, s.handleRangeSort)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "range_copy_paste",
		Description: "Copy and paste data between ranges",
	}, s.handleRangeCopyPaste)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "range_cut_paste",
		Description: "Cut and paste data between ranges",
	}, s.handleRangeCutPaste)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "range_duplicate",
		Description: "Duplicate a range of cells",
	}, s.handleRangeDuplicate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "metadata_create",
		Description: "Create developer metadata",
	}, s.handleMetadataCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "metadata_search",
		Description: "Search for developer metadata",
	}, s.handleMetadataSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "csv_import",
		Description: "Import CSV data into a sheet",
	}, s.handleCSVImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "data_export_csv",
		Description: "Export range data as CSV",
	}, s.handleDataExportCSV)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "note_add",
		Description: "Add a note to a cell",
	}, s.handleNoteAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "note_clear",
		Description: "Clear the note from a cell",
	}, s.handleNoteClear)
}

func (s *Server) handleChartCreate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChartCreateInput,
) (*mcp.CallToolResult, ChartCreateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ChartCreateOutput{}, err
	}

	chartType := input.ChartType
	if chartType == "" {
		chartType = "COLUMN"
	}
	title := input.Title
	if title == "" {
		title = "Chart"
	}
	position := input.Position
	if position == nil {
		position = &ChartPosition{Row: 0, Column: 5}
	}

	sheetName := domain.SheetName(input.DataRange, "Sheet1")
	sheetID, err := s.ports.Resolver.SheetID(ctx, id, sheetName)
	if err != nil {
		return nil, ChartCreateOutput{}, err
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{
		AddChart: &sheets.AddChartRequest{
			Chart: &sheets.EmbeddedChart{
				Spec: &sheets.ChartSpec{
					Title: title,
					BasicChart: &sheets.BasicChartSpec{
						ChartType:      chartType,
						LegendPosition: "RIGHT_LEGEND",
						Axis: []*sheets.BasicChartAxis{
							{Position: "BOTTOM_AXIS", Title: "X Axis"},
							{Position: "LEFT_AXIS", Title: "Y Axis"},
						},
						HeaderCount: 1,
					},
				},
				Position: &sheets.EmbeddedObjectPosition{
					OverlayPosition: &sheets.OverlayPosition{
						AnchorCell: &sheets.GridCoordinate{
							SheetId:         sheetID,
							RowIndex:        position.Row,
							ColumnIndex:     position.Column,
							ForceSendFields: []string{"RowIndex", "ColumnIndex"},
						},
						WidthPixels:  600,
						HeightPixels: 400,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, ChartCreateOutput{}, err
	}

	output := ChartCreateOutput{Title: title, Type: chartType}
	if len(resp.Replies) > 0 && resp.Replies[0].AddChart != nil && resp.Replies[0].AddChart.Chart != nil {
		output.ChartID = resp.Replies[0].AddChart.Chart.ChartId
	}
	return nil, output, nil
}

func (s *Server) handlePivotTableCreate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PivotTableCreateInput,
) (*mcp.CallToolResult, PivotTableCreateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, PivotTableCreateOutput{}, err
	}

	source, err := s.boundedGridRange(ctx, id, input.SourceRange)
	if err != nil {
		return nil, PivotTableCreateOutput{}, err
	}
	targetSheetID, err := s.ports.Resolver.SheetID(ctx, id, input.TargetSheet)
	if err != nil {
		return nil, PivotTableCreateOutput{}, err
	}

	// Fields map onto consecutive source columns: row fields first, then
	// column fields, then value fields.
	pivot := &sheets.PivotTable{Source: source}
	for i := range input.Rows {
		pivot.Rows = append(pivot.Rows, &sheets.PivotGroup{
			SourceColumnOffset: int64(i),
			ForceSendFields:    []string{"SourceColumnOffset"},
		})
	}
	for i := range input.Columns {
		pivot.Columns = append(pivot.Columns, &sheets.PivotGroup{
			SourceColumnOffset: int64(i + len(input.Rows)),
			ForceSendFields:    []string{"SourceColumnOffset"},
		})
	}
	for i, val := range input.Values {
		fn := val.Function
		if fn == "" {
			fn = "SUM"
		}
		pivot.Values = append(pivot.Values, &sheets.PivotValue{
			SummarizeFunction:  fn,
			SourceColumnOffset: int64(i + len(input.Rows) + len(input.Columns)),
			ForceSendFields:    []string{"SourceColumnOffset"},
		})
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Rows: []*sheets.RowData{{
				Values: []*sheets.CellData{{PivotTable: pivot}},
			}},
			Start: &sheets.GridCoordinate{
				SheetId:         targetSheetID,
				RowIndex:        0,
				ColumnIndex:     0,
				ForceSendFields: []string{"RowIndex", "ColumnIndex"},
			},
			Fields: "pivotTable",
		},
	})
	if err != nil {
		return nil, PivotTableCreateOutput{}, err
	}

	return nil, PivotTableCreateOutput{
		Source:  input.SourceRange,
		Target:  input.TargetSheet,
		Rows:    input.Rows,
		Columns: input.Columns,
		Values:  input.Values,
	}, nil
}

func (s *Server) handleFindReplace(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindReplaceInput,
) (*mcp.CallToolResult, FindReplaceOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, FindReplaceOutput{}, err
	}

	fr := &sheets.FindReplaceRequest{
		Find:            input.Find,
		Replacement:     input.Replace,
		MatchCase:       input.MatchCase,
		MatchEntireCell: input.MatchEntireCell,
		SearchByRegex:   false,
		IncludeFormulas: false,
	}
	if input.SheetName != "" {
		sheetID, err := s.ports.Resolver.SheetID(ctx, id, input.SheetName)
		if err != nil {
			return nil, FindReplaceOutput{}, err
		}
		fr.SheetId = sheetID
		fr.ForceSendFields = []string{"SheetId"}
	} else {
		fr.AllSheets = true
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{FindReplace: fr})
	if err != nil {
		return nil, FindReplaceOutput{}, err
	}

	output := FindReplaceOutput{Find: input.Find, Replace: input.Replace}
	if len(resp.Replies) > 0 && resp.Replies[0].FindReplace != nil {
		output.OccurrencesChanged = resp.Replies[0].FindReplace.OccurrencesChanged
	}
	return nil, output, nil
}

func (s *Server) handleRangeSort(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeSortInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	r, err := domain.ParseRange(input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	sheetID, err := s.sheetID(ctx, id, r.Sheet)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	// The first row of the range is a header and stays in place.
	bounded := r.Bounded()
	bounded.StartRow++

	var specs []*sheets.SortSpec
	for _, spec := range input.SortSpecs {
		order := spec.Order
		if order == "" {
			order = "ASCENDING"
		}
		specs = append(specs, &sheets.SortSpec{
			DimensionIndex:  spec.Column,
			SortOrder:       order,
			ForceSendFields: []string{"DimensionIndex"},
		})
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		SortRange: &sheets.SortRangeRequest{
			Range:     toGridRange(bounded, sheetID),
			SortSpecs: specs,
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Sorted range %s", input.Range)}, nil
}

func (s *Server) handleRangeCopyPaste(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeCopyPasteInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	pasteType := input.PasteType
	if pasteType == "" {
		pasteType = "PASTE_NORMAL"
	}

	source, err := s.boundedGridRange(ctx, id, input.SourceRange)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	target, err := s.boundedGridRange(ctx, id, input.TargetRange)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		CopyPaste: &sheets.CopyPasteRequest{
			Source:           source,
			Destination:      target,
			PasteType:        pasteType,
			PasteOrientation: "NORMAL",
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Copied %s to %s", input.SourceRange, input.TargetRange)}, nil
}

func (s *Server) handleRangeCutPaste(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangePairInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	source, err := s.boundedGridRange(ctx, id, input.SourceRange)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	// CutPaste destinations are a single anchor coordinate; the cut block
	// keeps its shape.
	target, err := domain.ParseRange(input.TargetRange)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	targetSheetID, err := s.sheetID(ctx, id, target.Sheet)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	anchor := target.Bounded()

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		CutPaste: &sheets.CutPasteRequest{
			Source: source,
			Destination: &sheets.GridCoordinate{
				SheetId:         targetSheetID,
				RowIndex:        anchor.StartRow,
				ColumnIndex:     anchor.StartCol,
				ForceSendFields: []string{"RowIndex", "ColumnIndex"},
			},
			PasteType: "PASTE_NORMAL",
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cut %s and pasted to %s", input.SourceRange, input.TargetRange)}, nil
}

func (s *Server) handleRangeDuplicate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangePairInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	resp, err := s.ports.Session.Sheets.ValuesGet(ctx, id, input.SourceRange, "FORMATTED_VALUE")
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if len(resp.Values) > 0 {
		_, err = s.ports.Session.Sheets.ValuesUpdate(ctx, id, input.TargetRange,
			&sheets.ValueRange{Values: resp.Values}, "USER_ENTERED")
		if err != nil {
			return nil, MessageOutput{}, err
		}
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Duplicated %s to %s", input.SourceRange, input.TargetRange)}, nil
}

func (s *Server) handleMetadataCreate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MetadataCreateInput,
) (*mcp.CallToolResult, MetadataCreateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MetadataCreateOutput{}, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = "DOCUMENT"
	}

	// Attach to the named sheet when the location resolves, otherwise to
	// the spreadsheet itself.
	location := &sheets.DeveloperMetadataLocation{Spreadsheet: true}
	sheetName := domain.SheetName(input.Location, input.Location)
	if sheetName != "" {
		sheetID, err := s.ports.Resolver.SheetID(ctx, id, sheetName)
		switch {
		case err == nil:
			location = &sheets.DeveloperMetadataLocation{SheetId: sheetID, ForceSendFields: []string{"SheetId"}}
		case errors.Is(err, domain.ErrSheetNotFound):
			// Keep the spreadsheet-level location.
		default:
			return nil, MetadataCreateOutput{}, err
		}
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		CreateDeveloperMetadata: &sheets.CreateDeveloperMetadataRequest{
			DeveloperMetadata: &sheets.DeveloperMetadata{
				MetadataKey:   input.Key,
				MetadataValue: input.Value,
				Visibility:    visibility,
				Location:      location,
			},
		},
	})
	if err != nil {
		return nil, MetadataCreateOutput{}, err
	}

	return nil, MetadataCreateOutput{
		Key:        input.Key,
		Value:      input.Value,
		Location:   input.Location,
		Visibility: visibility,
	}, nil
}

func (s *Server) handleMetadataSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MetadataSearchInput,
) (*mcp.CallToolResult, MetadataSearchOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MetadataSearchOutput{}, err
	}

	var filters []*sheets.DataFilter
	if input.Key != "" {
		filters = append(filters, &sheets.DataFilter{
			DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{MetadataKey: input.Key},
		})
	}
	if len(filters) == 0 {
		filters = []*sheets.DataFilter{{}}
	}

	resp, err := s.ports.Session.Sheets.SearchDeveloperMetadata(ctx, id,
		&sheets.SearchDeveloperMetadataRequest{DataFilters: filters})
	if err != nil {
		return nil, MetadataSearchOutput{}, err
	}

	output := MetadataSearchOutput{Metadata: []MetadataEntry{}}
	for _, item := range resp.MatchedDeveloperMetadata {
		if item.DeveloperMetadata == nil {
			continue
		}
		dm := item.DeveloperMetadata
		output.Metadata = append(output.Metadata, MetadataEntry{
			MetadataID: dm.MetadataId,
			Key:        dm.MetadataKey,
			Value:      dm.MetadataValue,
			Visibility: dm.Visibility,
		})
	}
	return nil, output, nil
}

func (s *Server) handleCSVImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CSVImportInput,
) (*mcp.CallToolResult, CSVImportOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, CSVImportOutput{}, err
	}

	sheetName := input.SheetName
	if sheetName == "" {
		sheetName = "Imported Data"
	}

	reader := csv.NewReader(strings.NewReader(input.CSVData))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, CSVImportOutput{}, fmt.Errorf("%w: malformed CSV: %v", domain.ErrInvalidInput, err)
	}

	// Create the target sheet when it does not exist yet. Any other
	// lookup failure aborts the import.
	_, err = s.ports.Resolver.SheetID(ctx, id, sheetName)
	switch {
	case errors.Is(err, domain.ErrSheetNotFound):
		_, err = s.batchUpdate(ctx, id, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		})
		if err != nil {
			return nil, CSVImportOutput{}, err
		}
	case err != nil:
		return nil, CSVImportOutput{}, err
	}

	values := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(record))
		for j, field := range record {
			row[j] = field
		}
		values[i] = row
	}

	_, err = s.ports.Session.Sheets.ValuesUpdate(ctx, id, quoteSheet(sheetName)+"!A1",
		&sheets.ValueRange{Values: values}, "RAW")
	if err != nil {
		return nil, CSVImportOutput{}, err
	}

	output := CSVImportOutput{Sheet: sheetName, RowsImported: len(values)}
	if len(values) > 0 {
		output.ColumnsImported = len(values[0])
	}
	return nil, output, nil
}

func (s *Server) handleDataExportCSV(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RangeInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	resp, err := s.ports.Session.Sheets.ValuesGet(ctx, id, input.Range, "FORMATTED_VALUE")
	if err != nil {
		return nil, MessageOutput{}, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range resp.Values {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = fmt.Sprint(cell)
		}
		if err := writer.Write(record); err != nil {
			return nil, MessageOutput{}, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: buf.String()}, nil
}

func (s *Server) handleNoteAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NoteAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	if err := s.setNote(ctx, id, input.Cell, &sheets.CellData{Note: input.Note}); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added note to %s", input.Cell)}, nil
}

func (s *Server) handleNoteClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CellInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	// An empty cell under the "note" field mask clears the note.
	if err := s.setNote(ctx, id, input.Cell, &sheets.CellData{}); err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cleared note from %s", input.Cell)}, nil
}

// setNote writes cell under the "note" field mask at the single cell
// addressed by ref.
func (s *Server) setNote(ctx context.Context, spreadsheetID, ref string, cell *sheets.CellData) error {
	r, err := domain.ParseRange(ref)
	if err != nil {
		return err
	}
	if r.StartRow == domain.Open || r.StartCol == domain.Open {
		return fmt.Errorf("%w: %q is not a single cell", domain.ErrInvalidRange, ref)
	}
	sheetID, err := s.sheetID(ctx, spreadsheetID, r.Sheet)
	if err != nil {
		return err
	}

	_, err = s.batchUpdate(ctx, spreadsheetID, &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Rows:   []*sheets.RowData{{Values: []*sheets.CellData{cell}}},
			Fields: "note",
			Start: &sheets.GridCoordinate{
				SheetId:         sheetID,
				RowIndex:        r.StartRow,
				ColumnIndex:     r.StartCol,
				ForceSendFields: []string{"RowIndex", "ColumnIndex"},
			},
		},
	})
	return err
}

// quoteSheet wraps a sheet name in single quotes for use in an A1
// reference, escaping embedded quotes.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"
)

// MessageOutput is the output schema for tools that return a plain
// confirmation message.
type MessageOutput struct {
	Message string `json:"message"`
}

// ValuesGetInput is the input schema for the values_get tool.
type ValuesGetInput struct {
	Range             string `json:"range" jsonschema:"A1 notation range (e.g. 'Sheet1!A1:B10')"`
	SpreadsheetID     string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
	ValueRenderOption string `json:"value_render_option,omitempty" jsonschema:"how to render values: FORMATTED_VALUE, UNFORMATTED_VALUE or FORMULA (default FORMATTED_VALUE)"`
}

// ValuesGetOutput holds the cell values of a range.
type ValuesGetOutput struct {
	Values [][]any `json:"values"`
}

// ValuesUpdateInput is the input schema for the values_update tool.
type ValuesUpdateInput struct {
	Range            string  `json:"range" jsonschema:"A1 notation range"`
	Values           [][]any `json:"values" jsonschema:"2D array of values to write"`
	SpreadsheetID    string  `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
	ValueInputOption string  `json:"value_input_option,omitempty" jsonschema:"how to interpret values: RAW or USER_ENTERED (default USER_ENTERED)"`
}

// ValuesUpdateOutput summarizes a values write.
type ValuesUpdateOutput struct {
	UpdatedCells   int64  `json:"updatedCells"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedRange   string `json:"updatedRange"`
}

// ValuesAppendInput is the input schema for the values_append tool.
type ValuesAppendInput struct {
	Range            string  `json:"range" jsonschema:"A1 notation range to append to"`
	Values           [][]any `json:"values" jsonschema:"2D array of values to append"`
	SpreadsheetID    string  `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
	InsertDataOption string  `json:"insert_data_option,omitempty" jsonschema:"how to insert data: OVERWRITE or INSERT_ROWS (default INSERT_ROWS)"`
}

// ValuesAppendOutput summarizes an append, including where the data landed.
type ValuesAppendOutput struct {
	UpdatedCells int64  `json:"updatedCells"`
	UpdatedRows  int64  `json:"updatedRows"`
	UpdatedRange string `json:"updatedRange"`
}

// ValuesClearInput is the input schema for the values_clear tool.
type ValuesClearInput struct {
	Range         string `json:"range" jsonschema:"A1 notation range to clear"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ValuesBatchGetInput is the input schema for the values_batch_get tool.
type ValuesBatchGetInput struct {
	Ranges        []string `json:"ranges" jsonschema:"list of A1 notation ranges"`
	SpreadsheetID string   `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ValuesBatchGetOutput maps each requested range to its values.
type ValuesBatchGetOutput struct {
	Ranges map[string][][]any `json:"ranges"`
}

// RangeValues is one range/values pair for values_batch_update.
type RangeValues struct {
	Range  string  `json:"range" jsonschema:"A1 notation range"`
	Values [][]any `json:"values" jsonschema:"2D array of values"`
}

// ValuesBatchUpdateInput is the input schema for the values_batch_update tool.
type ValuesBatchUpdateInput struct {
	Data          []RangeValues `json:"data" jsonschema:"list of range/values pairs to write"`
	SpreadsheetID string        `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ValuesBatchUpdateOutput summarizes a batched values write.
type ValuesBatchUpdateOutput struct {
	TotalUpdatedCells   int64 `json:"totalUpdatedCells"`
	TotalUpdatedRows    int64 `json:"totalUpdatedRows"`
	TotalUpdatedColumns int64 `json:"totalUpdatedColumns"`
	TotalUpdatedSheets  int64 `json:"totalUpdatedSheets"`
}

// FormulaAddInput is the input schema for the formula_add tool.
type FormulaAddInput struct {
	Cell          string `json:"cell" jsonschema:"cell location (A1 notation)"`
	Formula       string `json:"formula" jsonschema:"formula to add (e.g. '=SUM(A1:A10)')"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// FormulaArrayAddInput is the input schema for the formula_array_add tool.
type FormulaArrayAddInput struct {
	Range         string `json:"range" jsonschema:"range for the array formula (A1 notation)"`
	ArrayFormula  string `json:"array_formula" jsonschema:"array formula (e.g. '=ARRAYFORMULA(A1:A10*2)')"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// HyperlinkAddInput is the input schema for the hyperlink_add tool.
type HyperlinkAddInput struct {
	Cell          string `json:"cell" jsonschema:"cell location (A1 notation)"`
	URL           string `json:"url" jsonschema:"URL to link to"`
	DisplayText   string `json:"display_text,omitempty" jsonschema:"text to display (defaults to the URL)"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

func (s *Server) registerValuesTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_get",
		Description: "Read values from a spreadsheet range",
	}, s.handleValuesGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_update",
		Description: "Write values to a spreadsheet range",
	}, s.handleValuesUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_append",
		Description: "Append values to the end of existing data",
	}, s.handleValuesAppend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_clear",
		Description: "Clear values from a range (keeps formatting)",
	}, s.handleValuesClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_batch_get",
		Description: "Get values from multiple ranges in one request",
	}, s.handleValuesBatchGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "values_batch_update",
		Description: "Update multiple ranges in one request",
	}, s.handleValuesBatchUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "formula_add",
		Description: "Add a formula to a cell",
	}, s.handleFormulaAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "formula_array_add",
		Description: "Add an array formula to a range",
	}, s.handleFormulaArrayAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hyperlink_add",
		Description: "Add a hyperlink to a cell",
	}, s.handleHyperlinkAdd)
}

func (s *Server) handleValuesGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesGetInput,
) (*mcp.CallToolResult, ValuesGetOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ValuesGetOutput{}, err
	}

	renderOption := input.ValueRenderOption
	if renderOption == "" {
		renderOption = "FORMATTED_VALUE"
	}

	resp, err := s.ports.Session.Sheets.ValuesGet(ctx, id, input.Range, renderOption)
	if err != nil {
		return nil, ValuesGetOutput{}, err
	}

	values := resp.Values
	if values == nil {
		values = [][]any{}
	}
	return nil, ValuesGetOutput{Values: values}, nil
}

func (s *Server) handleValuesUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesUpdateInput,
) (*mcp.CallToolResult, ValuesUpdateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ValuesUpdateOutput{}, err
	}

	inputOption := input.ValueInputOption
	if inputOption == "" {
		inputOption = "USER_ENTERED"
	}

	resp, err := s.ports.Session.Sheets.ValuesUpdate(ctx, id, input.Range,
		&sheets.ValueRange{Values: input.Values}, inputOption)
	if err != nil {
		return nil, ValuesUpdateOutput{}, err
	}

	output := ValuesUpdateOutput{
		UpdatedCells:   resp.UpdatedCells,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedRange:   resp.UpdatedRange,
	}
	if output.UpdatedRange == "" {
		output.UpdatedRange = input.Range
	}
	return nil, output, nil
}

func (s *Server) handleValuesAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesAppendInput,
) (*mcp.CallToolResult, ValuesAppendOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ValuesAppendOutput{}, err
	}

	insertOption := input.InsertDataOption
	if insertOption == "" {
		insertOption = "INSERT_ROWS"
	}

	resp, err := s.ports.Session.Sheets.ValuesAppend(ctx, id, input.Range,
		&sheets.ValueRange{Values: input.Values}, insertOption)
	if err != nil {
		return nil, ValuesAppendOutput{}, err
	}

	output := ValuesAppendOutput{}
	if resp.Updates != nil {
		output.UpdatedCells = resp.Updates.UpdatedCells
		output.UpdatedRows = resp.Updates.UpdatedRows
		output.UpdatedRange = resp.Updates.UpdatedRange
	}
	return nil, output, nil
}

func (s *Server) handleValuesClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesClearInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	resp, err := s.ports.Session.Sheets.ValuesClear(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	cleared := resp.ClearedRange
	if cleared == "" {
		cleared = input.Range
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cleared range: %s", cleared)}, nil
}

func (s *Server) handleValuesBatchGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesBatchGetInput,
) (*mcp.CallToolResult, ValuesBatchGetOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ValuesBatchGetOutput{}, err
	}

	resp, err := s.ports.Session.Sheets.ValuesBatchGet(ctx, id, input.Ranges)
	if err != nil {
		return nil, ValuesBatchGetOutput{}, err
	}

	output := ValuesBatchGetOutput{Ranges: make(map[string][][]any, len(resp.ValueRanges))}
	for _, vr := range resp.ValueRanges {
		values := vr.Values
		if values == nil {
			values = [][]any{}
		}
		output.Ranges[vr.Range] = values
	}
	return nil, output, nil
}

func (s *Server) handleValuesBatchUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValuesBatchUpdateInput,
) (*mcp.CallToolResult, ValuesBatchUpdateOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ValuesBatchUpdateOutput{}, err
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
	}
	for _, item := range input.Data {
		req.Data = append(req.Data, &sheets.ValueRange{
			Range:  item.Range,
			Values: item.Values,
		})
	}

	resp, err := s.ports.Session.Sheets.ValuesBatchUpdate(ctx, id, req)
	if err != nil {
		return nil, ValuesBatchUpdateOutput{}, err
	}

	return nil, ValuesBatchUpdateOutput{
		TotalUpdatedCells:   resp.TotalUpdatedCells,
		TotalUpdatedRows:    resp.TotalUpdatedRows,
		TotalUpdatedColumns: resp.TotalUpdatedColumns,
		TotalUpdatedSheets:  resp.TotalUpdatedSheets,
	}, nil
}

func (s *Server) handleFormulaAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormulaAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	formula := input.Formula
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}

	_, err = s.ports.Session.Sheets.ValuesUpdate(ctx, id, input.Cell,
		&sheets.ValueRange{Values: [][]any{{formula}}}, "USER_ENTERED")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added formula to %s: %s", input.Cell, formula)}, nil
}

func (s *Server) handleFormulaArrayAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormulaArrayAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	formula := input.ArrayFormula
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	if !strings.Contains(strings.ToUpper(formula), "ARRAYFORMULA") {
		formula = fmt.Sprintf("=ARRAYFORMULA(%s)", formula[1:])
	}

	_, err = s.ports.Session.Sheets.ValuesUpdate(ctx, id, input.Range,
		&sheets.ValueRange{Values: [][]any{{formula}}}, "USER_ENTERED")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added array formula to %s", input.Range)}, nil
}

func (s *Server) handleHyperlinkAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HyperlinkAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	var formula string
	if input.DisplayText != "" {
		formula = fmt.Sprintf("=HYPERLINK(%q, %q)", input.URL, input.DisplayText)
	} else {
		formula = fmt.Sprintf("=HYPERLINK(%q)", input.URL)
	}

	_, err = s.ports.Session.Sheets.ValuesUpdate(ctx, id, input.Cell,
		&sheets.ValueRange{Values: [][]any{{formula}}}, "USER_ENTERED")
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added hyperlink to %s", input.Cell)}, nil
}

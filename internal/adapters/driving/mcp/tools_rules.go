package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
)

// FilterApplyInput is the input schema for the filter_apply tool.
type FilterApplyInput struct {
	SheetName     string         `json:"sheet_name" jsonschema:"sheet name"`
	FilterRange   string         `json:"filter_range" jsonschema:"range to filter (A1 notation)"`
	Criteria      map[string]any `json:"criteria,omitempty" jsonschema:"filter criteria by column"`
	SpreadsheetID string         `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ValidationAddInput is the input schema for the validation_add tool.
type ValidationAddInput struct {
	Range          string   `json:"range" jsonschema:"range to validate (A1 notation)"`
	ValidationType string   `json:"validation_type" jsonschema:"type of validation (e.g. ONE_OF_LIST, NUMBER_BETWEEN)"`
	Values         []string `json:"values,omitempty" jsonschema:"list of valid values (for ONE_OF_LIST)"`
	MinValue       *float64 `json:"min_value,omitempty" jsonschema:"minimum value (for NUMBER_BETWEEN)"`
	MaxValue       *float64 `json:"max_value,omitempty" jsonschema:"maximum value (for NUMBER_BETWEEN)"`
	SpreadsheetID  string   `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ProtectionAddInput is the input schema for the protection_add tool.
type ProtectionAddInput struct {
	Range         string   `json:"range" jsonschema:"range to protect (A1 notation)"`
	Description   string   `json:"description,omitempty" jsonschema:"description of the protection (default 'Protected Range')"`
	Editors       []string `json:"editors,omitempty" jsonschema:"email addresses allowed to edit; warning-only protection when empty"`
	SpreadsheetID string   `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// ProtectionAddOutput describes the created protection.
type ProtectionAddOutput struct {
	Range            string `json:"range"`
	Description      string `json:"description"`
	ProtectedRangeID int64  `json:"protectedRangeId"`
}

// ProtectionRemoveInput is the input schema for the protection_remove tool.
type ProtectionRemoveInput struct {
	ProtectionID  int64  `json:"protection_id" jsonschema:"ID of the protection to remove"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// NamedRangeAddInput is the input schema for the named_range_add tool.
type NamedRangeAddInput struct {
	Name          string `json:"name" jsonschema:"name for the range"`
	Range         string `json:"range" jsonschema:"range in A1 notation"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

// NamedRangeAddOutput describes the created named range.
type NamedRangeAddOutput struct {
	Name         string `json:"name"`
	Range        string `json:"range"`
	NamedRangeID string `json:"namedRangeId"`
}

// NamedRangeDeleteInput is the input schema for the named_range_delete tool.
type NamedRangeDeleteInput struct {
	Name          string `json:"name" jsonschema:"name of the range to delete"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"spreadsheet ID (uses current if not provided)"`
}

func (s *Server) registerRuleTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_apply",
		Description: "Apply a basic filter to a range",
	}, s.handleFilterApply)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_clear",
		Description: "Clear all filters from a sheet",
	}, s.handleFilterClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validation_add",
		Description: "Add data validation to cells",
	}, s.handleValidationAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validation_clear",
		Description: "Clear data validation from cells",
	}, s.handleValidationClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "protection_add",
		Description: "Protect a range or sheet",
	}, s.handleProtectionAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "protection_remove",
		Description: "Remove protection from a range",
	}, s.handleProtectionRemove)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "named_range_add",
		Description: "Create a named range",
	}, s.handleNamedRangeAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "named_range_delete",
		Description: "Delete a named range",
	}, s.handleNamedRangeDelete)
}

func (s *Server) handleFilterApply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilterApplyInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	r, err := domain.ParseRange(input.FilterRange)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	sheetName := r.Sheet
	if sheetName == "" {
		sheetName = input.SheetName
	}
	sheetID, err := s.sheetID(ctx, id, sheetName)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		SetBasicFilter: &sheets.SetBasicFilterRequest{
			Filter: &sheets.BasicFilter{
				Range: toGridRange(r.Bounded(), sheetID),
			},
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Applied filter to %s in '%s'", input.FilterRange, input.SheetName)}, nil
}

func (s *Server) handleFilterClear(
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

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		ClearBasicFilter: &sheets.ClearBasicFilterRequest{SheetId: sheetID},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cleared filters from '%s'", input.SheetName)}, nil
}

func (s *Server) handleValidationAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidationAddInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	condition := &sheets.BooleanCondition{Type: input.ValidationType}
	switch input.ValidationType {
	case "ONE_OF_LIST":
		for _, v := range input.Values {
			condition.Values = append(condition.Values, &sheets.ConditionValue{UserEnteredValue: v})
		}
	case "NUMBER_BETWEEN":
		if input.MinValue == nil || input.MaxValue == nil {
			return nil, MessageOutput{}, fmt.Errorf("%w: NUMBER_BETWEEN requires min_value and max_value", domain.ErrInvalidInput)
		}
		condition.Values = []*sheets.ConditionValue{
			{UserEnteredValue: strconv.FormatFloat(*input.MinValue, 'f', -1, 64)},
			{UserEnteredValue: strconv.FormatFloat(*input.MaxValue, 'f', -1, 64)},
		}
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{
			Range: gr,
			Rule: &sheets.DataValidationRule{
				Condition:    condition,
				ShowCustomUi: true,
				Strict:       true,
			},
		},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Added data validation to %s", input.Range)}, nil
}

func (s *Server) handleValidationClear(
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

	// A set request without a rule clears validation.
	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{Range: gr},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Cleared data validation from %s", input.Range)}, nil
}

func (s *Server) handleProtectionAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProtectionAddInput,
) (*mcp.CallToolResult, ProtectionAddOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, ProtectionAddOutput{}, err
	}

	description := input.Description
	if description == "" {
		description = "Protected Range"
	}

	gr, err := s.gridRange(ctx, id, input.Range)
	if err != nil {
		return nil, ProtectionAddOutput{}, err
	}

	protected := &sheets.ProtectedRange{
		Range:       gr,
		Description: description,
		WarningOnly: len(input.Editors) == 0,
	}
	if len(input.Editors) > 0 {
		protected.Editors = &sheets.Editors{Users: input.Editors}
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{
		AddProtectedRange: &sheets.AddProtectedRangeRequest{ProtectedRange: protected},
	})
	if err != nil {
		return nil, ProtectionAddOutput{}, err
	}

	output := ProtectionAddOutput{Range: input.Range, Description: description}
	if len(resp.Replies) > 0 && resp.Replies[0].AddProtectedRange != nil {
		if pr := resp.Replies[0].AddProtectedRange.ProtectedRange; pr != nil {
			output.ProtectedRangeID = pr.ProtectedRangeId
		}
	}
	return nil, output, nil
}

func (s *Server) handleProtectionRemove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProtectionRemoveInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		DeleteProtectedRange: &sheets.DeleteProtectedRangeRequest{ProtectedRangeId: input.ProtectionID},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Removed protection with ID: %d", input.ProtectionID)}, nil
}

func (s *Server) handleNamedRangeAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NamedRangeAddInput,
) (*mcp.CallToolResult, NamedRangeAddOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, NamedRangeAddOutput{}, err
	}

	gr, err := s.boundedGridRange(ctx, id, input.Range)
	if err != nil {
		return nil, NamedRangeAddOutput{}, err
	}

	resp, err := s.batchUpdate(ctx, id, &sheets.Request{
		AddNamedRange: &sheets.AddNamedRangeRequest{
			NamedRange: &sheets.NamedRange{
				Name:  input.Name,
				Range: gr,
			},
		},
	})
	if err != nil {
		return nil, NamedRangeAddOutput{}, err
	}

	output := NamedRangeAddOutput{Name: input.Name, Range: input.Range}
	if len(resp.Replies) > 0 && resp.Replies[0].AddNamedRange != nil {
		if nr := resp.Replies[0].AddNamedRange.NamedRange; nr != nil {
			output.NamedRangeID = nr.NamedRangeId
		}
	}
	return nil, output, nil
}

func (s *Server) handleNamedRangeDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NamedRangeDeleteInput,
) (*mcp.CallToolResult, MessageOutput, error) {
	id, err := s.resolve(input.SpreadsheetID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	namedRangeID, err := s.namedRangeID(ctx, id, input.Name)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	_, err = s.batchUpdate(ctx, id, &sheets.Request{
		DeleteNamedRange: &sheets.DeleteNamedRangeRequest{NamedRangeId: namedRangeID},
	})
	if err != nil {
		return nil, MessageOutput{}, err
	}
	return nil, MessageOutput{Message: fmt.Sprintf("Deleted named range: %s", input.Name)}, nil
}

// Package driven defines the outbound ports of the DocuGen server: the
// narrow slices of the Google Sheets and Drive APIs that the operation
// dispatcher depends on. Concrete implementations live in
// internal/connectors/google; tests substitute mocks.
package driven

import (
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// SpreadsheetAPI is the Sheets v4 surface used by the dispatcher. Every
// method issues exactly one remote call; atomicity of multi-request
// mutations is delegated to BatchUpdate.
type SpreadsheetAPI interface {
	// Create creates a new spreadsheet.
	Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error)

	// Get fetches spreadsheet metadata, restricted to the given fields
	// when fields is non-empty.
	Get(ctx context.Context, spreadsheetID, fields string) (*sheets.Spreadsheet, error)

	// BatchUpdate applies an ordered list of mutation requests atomically.
	BatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateSpreadsheetRequest) (*sheets.BatchUpdateSpreadsheetResponse, error)

	ValuesGet(ctx context.Context, spreadsheetID, a1, renderOption string) (*sheets.ValueRange, error)
	ValuesUpdate(ctx context.Context, spreadsheetID, a1 string, values *sheets.ValueRange, inputOption string) (*sheets.UpdateValuesResponse, error)
	ValuesAppend(ctx context.Context, spreadsheetID, a1 string, values *sheets.ValueRange, insertOption string) (*sheets.AppendValuesResponse, error)
	ValuesClear(ctx context.Context, spreadsheetID, a1 string) (*sheets.ClearValuesResponse, error)
	ValuesBatchGet(ctx context.Context, spreadsheetID string, ranges []string) (*sheets.BatchGetValuesResponse, error)
	ValuesBatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateValuesRequest) (*sheets.BatchUpdateValuesResponse, error)

	// SearchDeveloperMetadata queries developer metadata by data filter.
	SearchDeveloperMetadata(ctx context.Context, spreadsheetID string, req *sheets.SearchDeveloperMetadataRequest) (*sheets.SearchDeveloperMetadataResponse, error)
}

// DriveAPI is the Drive v3 surface used for file-level metadata.
type DriveAPI interface {
	// ListSpreadsheets lists spreadsheet files visible to the user,
	// newest first, up to pageSize entries.
	ListSpreadsheets(ctx context.Context, pageSize int64) ([]*drive.File, error)
}

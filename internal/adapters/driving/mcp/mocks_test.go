package mcp

import (
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/services"
)

// mockSheetsAPI is a mock implementation of driven.SpreadsheetAPI. It
// records the requests it receives and replies with canned responses.
type mockSheetsAPI struct {
	metadata      *sheets.Spreadsheet
	created       *sheets.Spreadsheet
	batchResponse *sheets.BatchUpdateSpreadsheetResponse
	valueRange    *sheets.ValueRange
	updateResp    *sheets.UpdateValuesResponse
	appendResp    *sheets.AppendValuesResponse
	clearResp     *sheets.ClearValuesResponse
	batchGetResp  *sheets.BatchGetValuesResponse
	batchValsResp *sheets.BatchUpdateValuesResponse
	searchResp    *sheets.SearchDeveloperMetadataResponse
	err           error

	getFields     []string
	batchRequests []*sheets.BatchUpdateSpreadsheetRequest
	updatedRange  string
	updatedValues *sheets.ValueRange
	updateOption  string
	appendOption  string
	clearedRange  string
	calls         int
}

func (m *mockSheetsAPI) Create(_ context.Context, _ *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	m.calls++
	if m.created != nil {
		return m.created, m.err
	}
	return &sheets.Spreadsheet{}, m.err
}

func (m *mockSheetsAPI) Get(_ context.Context, _ string, fields string) (*sheets.Spreadsheet, error) {
	m.calls++
	m.getFields = append(m.getFields, fields)
	if m.metadata != nil {
		return m.metadata, m.err
	}
	return &sheets.Spreadsheet{}, m.err
}

func (m *mockSheetsAPI) BatchUpdate(_ context.Context, _ string, req *sheets.BatchUpdateSpreadsheetRequest) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	m.calls++
	m.batchRequests = append(m.batchRequests, req)
	if m.batchResponse != nil {
		return m.batchResponse, m.err
	}
	return &sheets.BatchUpdateSpreadsheetResponse{}, m.err
}

func (m *mockSheetsAPI) ValuesGet(_ context.Context, _ string, _ string, _ string) (*sheets.ValueRange, error) {
	m.calls++
	if m.valueRange != nil {
		return m.valueRange, m.err
	}
	return &sheets.ValueRange{}, m.err
}

func (m *mockSheetsAPI) ValuesUpdate(_ context.Context, _ string, a1 string, values *sheets.ValueRange, inputOption string) (*sheets.UpdateValuesResponse, error) {
	m.calls++
	m.updatedRange = a1
	m.updatedValues = values
	m.updateOption = inputOption
	if m.updateResp != nil {
		return m.updateResp, m.err
	}
	return &sheets.UpdateValuesResponse{}, m.err
}

func (m *mockSheetsAPI) ValuesAppend(_ context.Context, _ string, a1 string, values *sheets.ValueRange, insertOption string) (*sheets.AppendValuesResponse, error) {
	m.calls++
	m.updatedRange = a1
	m.updatedValues = values
	m.appendOption = insertOption
	if m.appendResp != nil {
		return m.appendResp, m.err
	}
	return &sheets.AppendValuesResponse{}, m.err
}

func (m *mockSheetsAPI) ValuesClear(_ context.Context, _ string, a1 string) (*sheets.ClearValuesResponse, error) {
	m.calls++
	m.clearedRange = a1
	if m.clearResp != nil {
		return m.clearResp, m.err
	}
	return &sheets.ClearValuesResponse{}, m.err
}

func (m *mockSheetsAPI) ValuesBatchGet(_ context.Context, _ string, _ []string) (*sheets.BatchGetValuesResponse, error) {
	m.calls++
	if m.batchGetResp != nil {
		return m.batchGetResp, m.err
	}
	return &sheets.BatchGetValuesResponse{}, m.err
}

func (m *mockSheetsAPI) ValuesBatchUpdate(_ context.Context, _ string, _ *sheets.BatchUpdateValuesRequest) (*sheets.BatchUpdateValuesResponse, error) {
	m.calls++
	if m.batchValsResp != nil {
		return m.batchValsResp, m.err
	}
	return &sheets.BatchUpdateValuesResponse{}, m.err
}

func (m *mockSheetsAPI) SearchDeveloperMetadata(_ context.Context, _ string, _ *sheets.SearchDeveloperMetadataRequest) (*sheets.SearchDeveloperMetadataResponse, error) {
	m.calls++
	if m.searchResp != nil {
		return m.searchResp, m.err
	}
	return &sheets.SearchDeveloperMetadataResponse{}, m.err
}

// lastBatchRequest returns the single mutation request of the most
// recent batch update.
func (m *mockSheetsAPI) lastBatchRequest() *sheets.Request {
	if len(m.batchRequests) == 0 {
		return nil
	}
	last := m.batchRequests[len(m.batchRequests)-1]
	if len(last.Requests) == 0 {
		return nil
	}
	return last.Requests[0]
}

// staticResolver resolves every sheet name to a fixed ID.
type staticResolver struct {
	id  int64
	err error
}

func (r *staticResolver) SheetID(_ context.Context, _, _ string) (int64, error) {
	return r.id, r.err
}

// mockDriveAPI is a mock implementation of driven.DriveAPI.
type mockDriveAPI struct {
	files    []*drive.File
	pageSize int64
	err      error
}

func (m *mockDriveAPI) ListSpreadsheets(_ context.Context, pageSize int64) ([]*drive.File, error) {
	m.pageSize = pageSize
	return m.files, m.err
}

// metadataWithSheets builds spreadsheet metadata carrying the given
// sheets in order, with IDs 0, 1, 2, ...
func metadataWithSheets(names ...string) *sheets.Spreadsheet {
	meta := &sheets.Spreadsheet{}
	for i, name := range names {
		meta.Sheets = append(meta.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name, SheetId: int64(i)},
		})
	}
	return meta
}

// newTestServer builds a server over mock APIs with the current
// spreadsheet register preset.
func newTestServer(sheetsAPI *mockSheetsAPI, driveAPI *mockDriveAPI) (*Server, *services.Session) {
	session := services.NewSession(sheetsAPI, driveAPI)
	session.SetCurrent("current-spreadsheet")
	server, err := NewServer(&Ports{Session: session})
	if err != nil {
		panic(err)
	}
	return server, session
}

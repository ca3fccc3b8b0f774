package google

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/ports/driven"
)

// Ensure the clients implement the driven ports.
var (
	_ driven.SpreadsheetAPI = (*SheetsClient)(nil)
	_ driven.DriveAPI       = (*DriveClient)(nil)
)

// SheetsClient implements driven.SpreadsheetAPI over a *sheets.Service,
// waiting on a token-bucket rate limiter before every call. Remote errors
// come back classified by WrapError; a 429 additionally arms the
// limiter's backoff.
type SheetsClient struct {
	svc     *sheets.Service
	limiter *RateLimiter
}

// NewSheetsClient wraps svc with the default Sheets rate limiter.
func NewSheetsClient(svc *sheets.Service) *SheetsClient {
	return &SheetsClient{svc: svc, limiter: NewRateLimiter(ServiceSheets)}
}

func (c *SheetsClient) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// note classifies remote errors and records rate-limit responses so
// subsequent calls back off.
func (c *SheetsClient) note(err error) error {
	if IsRateLimited(err) {
		c.limiter.RecordRateLimitError(0)
	}
	return WrapError(err)
}

// Create creates a new spreadsheet.
func (c *SheetsClient) Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Create(spreadsheet).
		Fields("spreadsheetId", "spreadsheetUrl", "sheets").
		Context(ctx).Do()
	return resp, c.note(err)
}

// Get fetches spreadsheet metadata, restricted to fields when non-empty.
func (c *SheetsClient) Get(ctx context.Context, spreadsheetID, fields string) (*sheets.Spreadsheet, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	call := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx)
	if fields != "" {
		call = call.Fields(googleapi.Field(fields))
	}
	resp, err := call.Do()
	return resp, c.note(err)
}

// BatchUpdate applies an ordered list of mutation requests atomically.
func (c *SheetsClient) BatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateSpreadsheetRequest) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesGet(ctx context.Context, spreadsheetID, a1, renderOption string) (*sheets.ValueRange, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	call := c.svc.Spreadsheets.Values.Get(spreadsheetID, a1).Context(ctx)
	if renderOption != "" {
		call = call.ValueRenderOption(renderOption)
	}
	resp, err := call.Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesUpdate(ctx context.Context, spreadsheetID, a1 string, values *sheets.ValueRange, inputOption string) (*sheets.UpdateValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, a1, values).
		ValueInputOption(inputOption).
		Context(ctx).Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesAppend(ctx context.Context, spreadsheetID, a1 string, values *sheets.ValueRange, insertOption string) (*sheets.AppendValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, a1, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption(insertOption).
		Context(ctx).Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesClear(ctx context.Context, spreadsheetID, a1 string) (*sheets.ClearValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, a1, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesBatchGet(ctx context.Context, spreadsheetID string, ranges []string) (*sheets.BatchGetValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	return resp, c.note(err)
}

func (c *SheetsClient) ValuesBatchUpdate(ctx context.Context, spreadsheetID string, req *sheets.BatchUpdateValuesRequest) (*sheets.BatchUpdateValuesResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return resp, c.note(err)
}

// SearchDeveloperMetadata queries developer metadata by data filter.
func (c *SheetsClient) SearchDeveloperMetadata(ctx context.Context, spreadsheetID string, req *sheets.SearchDeveloperMetadataRequest) (*sheets.SearchDeveloperMetadataResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.svc.Spreadsheets.DeveloperMetadata.Search(spreadsheetID, req).Context(ctx).Do()
	return resp, c.note(err)
}

// DriveClient implements driven.DriveAPI over a *drive.Service.
type DriveClient struct {
	svc     *drive.Service
	limiter *RateLimiter
}

// NewDriveClient wraps svc with the default Drive rate limiter.
func NewDriveClient(svc *drive.Service) *DriveClient {
	return &DriveClient{svc: svc, limiter: NewRateLimiter(ServiceDrive)}
}

const spreadsheetMIMEType = "application/vnd.google-apps.spreadsheet"

// ListSpreadsheets lists spreadsheet files visible to the user, newest first.
func (c *DriveClient) ListSpreadsheets(ctx context.Context, pageSize int64) ([]*drive.File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	resp, err := c.svc.Files.List().
		Q(fmt.Sprintf("mimeType='%s' and trashed=false", spreadsheetMIMEType)).
		OrderBy("modifiedTime desc").
		PageSize(pageSize).
		Fields("files(id, name, modifiedTime, webViewLink)").
		Context(ctx).Do()
	if err != nil {
		if IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, WrapError(err)
	}
	return resp.Files, nil
}

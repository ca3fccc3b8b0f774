// Package google wires the Sheets v4 and Drive v3 clients behind the
// driven ports, adds per-service rate limiting, and classifies Google API
// errors.
package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested during consent. Spreadsheets for the Sheets API, drive
// for file-level metadata.
var Scopes = []string{sheets.SpreadsheetsScope, drive.DriveScope}

// NewSheetsService creates a Sheets API service using the provided TokenSource.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}

// NewDriveService creates a Google Drive API service using the provided TokenSource.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(ts))
}

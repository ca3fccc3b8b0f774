// Package domain holds the core types of the DocuGen spreadsheet adapter:
// the error taxonomy, A1-notation references, and the grid geometry that
// Sheets batch requests are built from.
package domain

import "errors"

// Domain errors represent local failures raised before any remote call.
// Remote API failures keep their original message, classified by status
// code in the google connector.
var (
	// ErrNoSpreadsheet indicates no spreadsheet ID was supplied and no
	// current spreadsheet is set on the session.
	ErrNoSpreadsheet = errors.New("no spreadsheet_id provided and no current spreadsheet set")

	// ErrSheetNotFound indicates a sheet name is absent from the live
	// spreadsheet metadata at resolution time.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrNamedRangeNotFound indicates a named range name did not resolve.
	ErrNamedRangeNotFound = errors.New("named range not found")

	// ErrInvalidRange indicates an A1 range string could not be parsed.
	ErrInvalidRange = errors.New("invalid A1 range")

	// ErrInvalidColumn indicates a column letter is not a valid A1 column.
	ErrInvalidColumn = errors.New("invalid column letter")

	// ErrInvalidColor indicates a color string is not a parseable hex color.
	ErrInvalidColor = errors.New("invalid hex color")

	// ErrInvalidInput indicates malformed or missing tool arguments.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration and authentication errors. Fatal at startup or session
	// establishment respectively, never retried per call.

	// ErrNoClientSecret indicates no OAuth client secret path is configured.
	ErrNoClientSecret = errors.New("GOOGLE_OAUTH_PATH not set and no credentials_path configured")

	// ErrAuthFailed indicates the consent or refresh flow failed.
	ErrAuthFailed = errors.New("authentication failed")
)

package mcp

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/docugen-labs/docugen/internal/core/domain"
	"github.com/docugen-labs/docugen/internal/core/ports/driven"
)

// SheetResolver maps a sheet name to its numeric sheet ID within a
// spreadsheet. Injectable so tests and callers with cached metadata can
// substitute their own lookup.
type SheetResolver interface {
	SheetID(ctx context.Context, spreadsheetID, name string) (int64, error)
}

// MetadataResolver resolves sheet names against freshly fetched
// spreadsheet metadata. Fetching per lookup keeps resolution correct
// when other clients rename or delete sheets between calls.
type MetadataResolver struct {
	api driven.SpreadsheetAPI
}

// NewMetadataResolver creates a resolver backed by api.
func NewMetadataResolver(api driven.SpreadsheetAPI) *MetadataResolver {
	return &MetadataResolver{api: api}
}

// SheetID returns the sheet ID for the named sheet.
func (r *MetadataResolver) SheetID(ctx context.Context, spreadsheetID, name string) (int64, error) {
	meta, err := r.api.Get(ctx, spreadsheetID, "sheets.properties")
	if err != nil {
		return 0, err
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrSheetNotFound, name)
}

// resolve maps an optional explicit spreadsheet ID through the session's
// current-spreadsheet register.
func (s *Server) resolve(explicit string) (string, error) {
	return s.ports.Session.ResolveSpreadsheetID(explicit)
}

// sheetID resolves a sheet name within a spreadsheet. An empty name
// addresses the default first sheet, ID 0, without a lookup.
func (s *Server) sheetID(ctx context.Context, spreadsheetID, name string) (int64, error) {
	if name == "" {
		return 0, nil
	}
	return s.ports.Resolver.SheetID(ctx, spreadsheetID, name)
}

// namedRangeID resolves a named range's ID from spreadsheet metadata.
func (s *Server) namedRangeID(ctx context.Context, spreadsheetID, name string) (string, error) {
	meta, err := s.ports.Session.Sheets.Get(ctx, spreadsheetID, "namedRanges")
	if err != nil {
		return "", err
	}
	for _, nr := range meta.NamedRanges {
		if nr.Name == name {
			return nr.NamedRangeId, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrNamedRangeNotFound, name)
}

// gridRange parses an A1 reference and converts it to a GridRange,
// resolving the sheet name when the reference carries one. Open bounds
// stay unset, which the API reads as unbounded.
func (s *Server) gridRange(ctx context.Context, spreadsheetID, a1 string) (*sheets.GridRange, error) {
	r, err := domain.ParseRange(a1)
	if err != nil {
		return nil, err
	}
	sheetID, err := s.sheetID(ctx, spreadsheetID, r.Sheet)
	if err != nil {
		return nil, err
	}
	return toGridRange(r, sheetID), nil
}

// boundedGridRange is gridRange with Open bounds replaced by the default
// extents, for requests that need an exact rectangle.
func (s *Server) boundedGridRange(ctx context.Context, spreadsheetID, a1 string) (*sheets.GridRange, error) {
	r, err := domain.ParseRange(a1)
	if err != nil {
		return nil, err
	}
	sheetID, err := s.sheetID(ctx, spreadsheetID, r.Sheet)
	if err != nil {
		return nil, err
	}
	return toGridRange(r.Bounded(), sheetID), nil
}

func toGridRange(r domain.Range, sheetID int64) *sheets.GridRange {
	gr := &sheets.GridRange{SheetId: sheetID}
	if r.StartRow != domain.Open {
		gr.StartRowIndex = r.StartRow
	}
	if r.EndRow != domain.Open {
		gr.EndRowIndex = r.EndRow
	}
	if r.StartCol != domain.Open {
		gr.StartColumnIndex = r.StartCol
	}
	if r.EndCol != domain.Open {
		gr.EndColumnIndex = r.EndCol
	}
	return gr
}

// batchUpdate wraps a single mutation request in a batch envelope.
func (s *Server) batchUpdate(ctx context.Context, spreadsheetID string, reqs ...*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return s.ports.Session.Sheets.BatchUpdate(ctx, spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: reqs,
	})
}

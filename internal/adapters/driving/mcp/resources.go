package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	googleconn "github.com/docugen-labs/docugen/internal/connectors/google"
)

const spreadsheetURIPrefix = "spreadsheet://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for server settings.
	s.server.AddResource(&mcp.Resource{
		URI:         "config://settings",
		Name:        "settings",
		Description: "Current DocuGen settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	// Template for spreadsheet metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: spreadsheetURIPrefix + "{spreadsheetId}",
		Name:        "spreadsheet-metadata",
		Description: "Metadata of a specific spreadsheet",
		MIMEType:    "application/json",
	}, s.handleSpreadsheetResource)
}

// handleSettingsResource returns the static server settings document.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(map[string]any{
		"version":    Version,
		"api":        "Google Sheets v4",
		"auth":       "OAuth 2.0",
		"transports": []string{"stdio", "streamable-http"},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSpreadsheetResource returns metadata for the spreadsheet named in
// the URI.
func (s *Server) handleSpreadsheetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	spreadsheetID := extractSpreadsheetID(req.Params.URI)
	if spreadsheetID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	meta, err := s.ports.Session.Sheets.Get(ctx, spreadsheetID, "properties,sheets.properties")
	switch {
	case googleconn.IsNotFound(err):
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	case googleconn.IsUnauthorized(err) || googleconn.IsForbidden(err):
		return nil, fmt.Errorf("no access to spreadsheet %s: %v", spreadsheetID, err)
	case err != nil:
		return nil, fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	type sheetInfo struct {
		Name    string `json:"name"`
		ID      int64  `json:"id"`
		Rows    int64  `json:"rows"`
		Columns int64  `json:"columns"`
	}

	info := struct {
		SpreadsheetID string      `json:"spreadsheet_id"`
		Title         string      `json:"title"`
		Sheets        []sheetInfo `json:"sheets"`
	}{SpreadsheetID: spreadsheetID, Sheets: []sheetInfo{}}

	if meta.Properties != nil {
		info.Title = meta.Properties.Title
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties == nil {
			continue
		}
		entry := sheetInfo{Name: sheet.Properties.Title, ID: sheet.Properties.SheetId}
		if grid := sheet.Properties.GridProperties; grid != nil {
			entry.Rows = grid.RowCount
			entry.Columns = grid.ColumnCount
		}
		info.Sheets = append(info.Sheets, entry)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling spreadsheet metadata: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a URI like
// spreadsheet://{spreadsheetId}.
func extractSpreadsheetID(uri string) string {
	if !strings.HasPrefix(uri, spreadsheetURIPrefix) {
		return ""
	}
	return strings.TrimPrefix(uri, spreadsheetURIPrefix)
}

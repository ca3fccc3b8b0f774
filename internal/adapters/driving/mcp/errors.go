// Package mcp provides the MCP (Model Context Protocol) server adapter for
// DocuGen. It exposes the Google Sheets operation catalogue as typed MCP
// tools so AI assistants can create and manipulate spreadsheets.
package mcp

import "errors"

// ErrMissingSession is returned when no service session is provided.
var ErrMissingSession = errors.New("mcp: service session is required")

package mcp

import (
	"github.com/docugen-labs/docugen/internal/core/services"
)

// Ports aggregates the dependencies the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session carries the authenticated API handles and the
	// current-spreadsheet register.
	Session *services.Session

	// Resolver maps sheet names to sheet IDs. When nil, a resolver that
	// fetches fresh spreadsheet metadata per lookup is used.
	Resolver SheetResolver
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}

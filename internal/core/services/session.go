// Package services holds the service session: the pair of remote API
// handles plus the one piece of cross-call state the server carries, the
// current-spreadsheet register.
package services

import (
	"sync"

	"github.com/docugen-labs/docugen/internal/core/domain"
	"github.com/docugen-labs/docugen/internal/core/ports/driven"
)

// Session wraps the authenticated API handles and the current-spreadsheet
// register. It is constructed once per process after authentication and
// shared by all tool invocations; the register is mutex-guarded because
// the hosting runtime may invoke tools concurrently.
type Session struct {
	Sheets driven.SpreadsheetAPI
	Drive  driven.DriveAPI

	mu      sync.RWMutex
	current string
}

// NewSession creates a session over the given API handles.
func NewSession(sheetsAPI driven.SpreadsheetAPI, driveAPI driven.DriveAPI) *Session {
	return &Session{Sheets: sheetsAPI, Drive: driveAPI}
}

// ResolveSpreadsheetID returns explicit when non-empty, otherwise the
// current-spreadsheet register. It never performs I/O; callers invoke it
// before building any request so the missing-target failure happens
// before a single network call.
func (s *Session) ResolveSpreadsheetID(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return "", domain.ErrNoSpreadsheet
	}
	return s.current, nil
}

// SetCurrent records id as the default spreadsheet for subsequent calls.
// Only the create operation mutates the register.
func (s *Session) SetCurrent(id string) {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
}

// Current returns the current-spreadsheet register, empty when unset.
func (s *Session) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

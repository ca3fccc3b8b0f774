// Package auth manages the Google OAuth credential lifecycle: loading the
// client secret, persisting the user token, and running the installed-app
// consent flow with a local callback server.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore persists an OAuth token as JSON on disk.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store at path. If path is empty the default
// ~/.docugen/token.json is used.
func NewTokenStore(path string) (*TokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".docugen", "token.json")
	}
	return &TokenStore{path: path}, nil
}

// Path returns the file path tokens are persisted to.
func (s *TokenStore) Path() string {
	return s.path
}

// Load reads the persisted token. Returns os.ErrNotExist (wrapped) when no
// token has been saved yet.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", s.path, err)
	}
	return &tok, nil
}

// Save persists the token, creating the parent directory if needed.
// The write goes through a temp file and rename so a crash mid-write
// never leaves a truncated token file behind.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".token-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Clear removes the persisted token. Missing files are not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

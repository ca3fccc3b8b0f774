// Package config is the file-based configuration store for DocuGen,
// a TOML file in the user's .docugen directory. It carries the few
// settings the server needs outside the environment: the OAuth client
// secret path and an optional token path override.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Well-known configuration keys.
const (
	// KeyCredentialsPath points at the OAuth client secret JSON file.
	// The GOOGLE_OAUTH_PATH environment variable takes precedence.
	KeyCredentialsPath = "credentials_path"

	// KeyTokenPath overrides where the persisted OAuth token is stored.
	KeyTokenPath = "token_path"
)

// Store is a TOML-backed configuration store. Writes persist immediately.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.docugen/config.toml.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docugen")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Dir returns the directory holding the config file.
func (s *Store) Dir() string {
	return filepath.Dir(s.filePath)
}

// Get retrieves a configuration value by key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value, empty when unset.
func (s *Store) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// Set stores a configuration value and persists immediately.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Load reads the config file from disk, replacing in-memory state.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	data := make(map[string]any)
	if err := toml.Unmarshal(raw, &data); err != nil {
		return err
	}
	s.data = data
	return nil
}

// save writes the current state to disk. Caller must hold the lock.
func (s *Store) save() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}

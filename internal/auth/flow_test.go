package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docugen-labs/docugen/internal/config"
	"github.com/docugen-labs/docugen/internal/core/domain"
)

const testClientSecret = `{
  "installed": {
    "client_id": "test-client.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func newTestManager(t *testing.T) (*Manager, *config.Store) {
	t.Helper()

	cfg, err := config.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Set(config.KeyTokenPath, filepath.Join(t.TempDir(), "token.json")))

	mgr, err := NewManager(cfg)
	require.NoError(t, err)
	return mgr, cfg
}

func TestManager_ClientSecretPath_EnvWins(t *testing.T) {
	mgr, cfg := newTestManager(t)
	require.NoError(t, cfg.Set(config.KeyCredentialsPath, "/from/config.json"))
	t.Setenv(EnvClientSecretPath, "/from/env.json")

	path, err := mgr.clientSecretPath()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", path)
}

func TestManager_ClientSecretPath_ConfigFallback(t *testing.T) {
	mgr, cfg := newTestManager(t)
	require.NoError(t, cfg.Set(config.KeyCredentialsPath, "/from/config.json"))
	t.Setenv(EnvClientSecretPath, "")

	path, err := mgr.clientSecretPath()
	require.NoError(t, err)
	assert.Equal(t, "/from/config.json", path)
}

func TestManager_ClientSecretPath_Unset(t *testing.T) {
	mgr, _ := newTestManager(t)
	t.Setenv(EnvClientSecretPath, "")

	_, err := mgr.clientSecretPath()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoClientSecret))
}

func TestManager_OAuthConfig(t *testing.T) {
	mgr, _ := newTestManager(t)

	secretPath := filepath.Join(t.TempDir(), "client_secret.json")
	require.NoError(t, os.WriteFile(secretPath, []byte(testClientSecret), 0600))
	t.Setenv(EnvClientSecretPath, secretPath)

	conf, err := mgr.oauthConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-client.apps.googleusercontent.com", conf.ClientID)
	assert.NotEmpty(t, conf.Scopes)
}

func TestManager_OAuthConfig_MissingFile(t *testing.T) {
	mgr, _ := newTestManager(t)
	t.Setenv(EnvClientSecretPath, filepath.Join(t.TempDir(), "absent.json"))

	_, err := mgr.oauthConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read client secret")
}

func TestManager_OAuthConfig_InvalidJSON(t *testing.T) {
	mgr, _ := newTestManager(t)

	secretPath := filepath.Join(t.TempDir(), "client_secret.json")
	require.NoError(t, os.WriteFile(secretPath, []byte("not json"), 0600))
	t.Setenv(EnvClientSecretPath, secretPath)

	_, err := mgr.oauthConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse client secret")
}

func TestManager_TokenSource_NoClientSecret(t *testing.T) {
	mgr, _ := newTestManager(t)
	t.Setenv(EnvClientSecretPath, "")

	_, err := mgr.TokenSource(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoClientSecret))
}

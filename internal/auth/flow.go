package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/docugen-labs/docugen/internal/config"
	googleconn "github.com/docugen-labs/docugen/internal/connectors/google"
	"github.com/docugen-labs/docugen/internal/core/domain"
	"github.com/docugen-labs/docugen/internal/logger"
)

// EnvClientSecretPath is the environment variable naming the OAuth client
// secret JSON file. It takes precedence over the config store.
const EnvClientSecretPath = "GOOGLE_OAUTH_PATH"

// consentTimeout bounds how long the flow waits for the user to approve
// access in the browser.
const consentTimeout = 5 * time.Minute

// Manager owns the credential lifecycle: it resolves the client secret,
// loads or refreshes the persisted token, and runs the browser consent
// flow when no usable token exists.
type Manager struct {
	cfg   *config.Store
	store *TokenStore
}

// NewManager creates a credential manager backed by cfg. The token path
// comes from the config store when set, the default location otherwise.
func NewManager(cfg *config.Store) (*Manager, error) {
	store, err := NewTokenStore(cfg.GetString(config.KeyTokenPath))
	if err != nil {
		return nil, err
	}
	return &Manager{cfg: cfg, store: store}, nil
}

// TokenStore exposes the underlying token store.
func (m *Manager) TokenStore() *TokenStore {
	return m.store
}

// clientSecretPath resolves the client secret location. The environment
// variable wins over the config store.
func (m *Manager) clientSecretPath() (string, error) {
	if path := os.Getenv(EnvClientSecretPath); path != "" {
		return path, nil
	}
	if path := m.cfg.GetString(config.KeyCredentialsPath); path != "" {
		return path, nil
	}
	return "", domain.ErrNoClientSecret
}

// oauthConfig loads and parses the installed-app client secret.
func (m *Manager) oauthConfig() (*oauth2.Config, error) {
	path, err := m.clientSecretPath()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secret %s: %w", path, err)
	}

	conf, err := google.ConfigFromJSON(raw, googleconn.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret %s: %w", path, err)
	}
	return conf, nil
}

// TokenSource returns a token source backed by the persisted token,
// refreshing and re-persisting as needed. When no token exists, or the
// stored token cannot be refreshed, the interactive consent flow runs.
func (m *Manager) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := m.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := m.store.Load()
	switch {
	case err == nil:
		if tok.Valid() || tok.RefreshToken != "" {
			logger.Debug("using persisted token from %s", m.store.Path())
			return m.persisting(conf.TokenSource(ctx, tok), tok), nil
		}
		logger.Debug("persisted token expired with no refresh token")
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("no persisted token at %s", m.store.Path())
	default:
		logger.Warn("discarding unreadable token file: %v", err)
	}

	tok, err = m.consent(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	if err := m.store.Save(tok); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return m.persisting(conf.TokenSource(ctx, tok), tok), nil
}

// Login forces a fresh interactive consent flow and persists the result,
// regardless of any existing token.
func (m *Manager) Login(ctx context.Context) error {
	conf, err := m.oauthConfig()
	if err != nil {
		return err
	}

	tok, err := m.consent(ctx, conf)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	return m.store.Save(tok)
}

// consent runs the installed-app flow: local callback server, browser
// authorization with PKCE, code exchange.
func (m *Manager) consent(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	srv := NewCallbackServer(0, state)
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer srv.Stop()

	flowConf := *conf
	flowConf.RedirectURL = srv.RedirectURI()

	authURL := flowConf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	logger.Info("opening browser for Google authorization")
	if err := OpenBrowser(authURL); err != nil {
		fmt.Fprintf(os.Stderr, "Open this URL to authorize access:\n\n%s\n\n", authURL)
	}

	code, err := srv.WaitForCode(consentTimeout)
	if err != nil {
		return nil, err
	}

	tok, err := flowConf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// persisting wraps src so refreshed tokens are written back to disk.
func (m *Manager) persisting(src oauth2.TokenSource, last *oauth2.Token) oauth2.TokenSource {
	return &persistingSource{src: oauth2.ReuseTokenSource(last, src), store: m.store, last: last.AccessToken}
}

type persistingSource struct {
	src   oauth2.TokenSource
	store *TokenStore
	last  string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := p.store.Save(tok); err != nil {
			logger.Warn("failed to persist refreshed token: %v", err)
		}
	}
	return tok, nil
}

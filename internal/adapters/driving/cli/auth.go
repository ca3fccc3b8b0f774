package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docugen-labs/docugen/internal/auth"
	"github.com/docugen-labs/docugen/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google authorization",
	Long: `Authorize DocuGen against your Google account and inspect or clear
the stored credentials.

DocuGen needs an OAuth client secret JSON file for an installed
application, created in the Google Cloud console with the Sheets and
Drive APIs enabled. Point at it once with --credentials (persisted in
the config store) or via the GOOGLE_OAUTH_PATH environment variable.

Examples:
  # First-time setup
  docugen auth login --credentials ~/Downloads/client_secret.json

  # Check whether a usable token is stored
  docugen auth status

  # Remove the stored token
  docugen auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize access to Google Sheets and Drive",
	Long: `Run the browser consent flow and persist the resulting token.

Always runs a fresh consent flow, replacing any stored token. The MCP
server refreshes tokens automatically, so this is only needed for the
initial setup or after revoking access.`,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credential state",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE:  runAuthLogout,
}

// Flags for auth login.
var authLoginCredentials string

func init() {
	authLoginCmd.Flags().StringVar(
		&authLoginCredentials, "credentials", "", "Path to the OAuth client secret JSON file")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func newManager() (*auth.Manager, *config.Store, error) {
	cfg, err := config.NewStore("")
	if err != nil {
		return nil, nil, fmt.Errorf("opening config store: %w", err)
	}
	manager, err := auth.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	return manager, cfg, nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	manager, cfg, err := newManager()
	if err != nil {
		return err
	}

	if authLoginCredentials != "" {
		if err := cfg.Set(config.KeyCredentialsPath, authLoginCredentials); err != nil {
			return fmt.Errorf("persisting credentials path: %w", err)
		}
	}

	if err := manager.Login(cmd.Context()); err != nil {
		return err
	}

	cmd.Printf("Authorization complete. Token saved to %s\n", manager.TokenStore().Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	manager, _, err := newManager()
	if err != nil {
		return err
	}

	store := manager.TokenStore()
	tok, err := store.Load()
	if errors.Is(err, os.ErrNotExist) {
		cmd.Println("Not authenticated.")
		cmd.Println("Run 'docugen auth login' to authorize access.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	cmd.Printf("Token: %s\n", store.Path())
	switch {
	case tok.Valid():
		cmd.Println("Status: valid")
	case tok.RefreshToken != "":
		cmd.Println("Status: expired, will refresh automatically")
	default:
		cmd.Println("Status: expired with no refresh token, run 'docugen auth login'")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	manager, _, err := newManager()
	if err != nil {
		return err
	}

	store := manager.TokenStore()
	if err := store.Clear(); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}

	cmd.Printf("Removed stored token at %s\n", store.Path())
	return nil
}

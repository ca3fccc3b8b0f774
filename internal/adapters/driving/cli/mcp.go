package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docugen-labs/docugen/internal/adapters/driving/mcp"
	"github.com/docugen-labs/docugen/internal/auth"
	"github.com/docugen-labs/docugen/internal/config"
	googleconn "github.com/docugen-labs/docugen/internal/connectors/google"
	"github.com/docugen-labs/docugen/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

If no valid Google token is stored, the server opens a browser for the
OAuth consent flow before accepting connections. Authorize ahead of time
with 'docugen auth login' to avoid this at startup.

Examples:
  # Stdio mode (default, for Claude Desktop)
  docugen mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  docugen mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "docugen": {
        "command": "/path/to/docugen",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	session, err := newSession(cmd.Context())
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Session: session})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// newSession authenticates against Google and wires the Sheets and Drive
// clients into a service session.
func newSession(ctx context.Context) (*services.Session, error) {
	cfg, err := config.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}

	manager, err := auth.NewManager(cfg)
	if err != nil {
		return nil, err
	}

	ts, err := manager.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	sheetsSvc, err := googleconn.NewSheetsService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	driveSvc, err := googleconn.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return services.NewSession(
		googleconn.NewSheetsClient(sheetsSvc),
		googleconn.NewDriveClient(driveSvc),
	), nil
}

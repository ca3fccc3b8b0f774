// Package cli implements the docugen command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docugen-labs/docugen/internal/logger"
)

// version is set via SetVersion at build time, "dev" otherwise.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docugen",
	Short: "Google Sheets automation over the Model Context Protocol",
	Long: `DocuGen exposes Google Sheets and Drive operations as MCP tools for
AI assistants: creating and listing spreadsheets, reading and writing
cell values, formatting, charts, pivot tables, and more.

Authorize access once with 'docugen auth login', then run
'docugen mcp serve' to start the server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
}

// SetVersion overrides the reported version. Called from main with the
// value stamped by the release build.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

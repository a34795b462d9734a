// Package commands provides the command tree for spobatchctl.
//
// spobatchctl is a small demonstration CLI for the spobatch batching
// engine: it queues a handful of REST and Graph operations onto one Batch
// and executes them, printing the reconciled results. It is not meant as
// an operational tool for a real tenant, only as a runnable example of
// wiring internal/config, internal/auth, internal/transport, and
// batchclient together end to end.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd is the spobatchctl root command.
var RootCmd = &cobra.Command{
	Use:   "spobatchctl",
	Short: "Demo CLI for the spobatch REST/Graph batching engine",
	Long: `spobatchctl is a demonstration CLI for spobatch, a client-side
request batching and dispatch engine for the SharePoint REST and
Microsoft Graph APIs.

It queues a small, fixed set of GET operations onto a single Batch and
executes them, printing the reconciled per-request results.`,
	SilenceUsage: true,
	Example: `  # Run the demo against an in-process fake batch server
  spobatchctl demo --local

  # Run the demo against a real tenant
  spobatchctl demo --site=https://contoso.sharepoint.com/sites/team \
    --tenant-id=... --client-id=... --client-secret=...

  # Output in JSON format
  spobatchctl demo --local -o json`,
}

// SetupCommands attaches all top-level commands to the root command.
func SetupCommands() {
	RootCmd.AddCommand(demoCmd)
}

// SetupGlobalFlags configures the global persistent flags shared by every
// subcommand.
func SetupGlobalFlags(rootCmd *cobra.Command, logLevel *string, timeout *int, verbose *bool, output *string) {
	rootCmd.PersistentFlags().StringVar(logLevel, "log-level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeout, "timeout", 30, "Per-batch HTTP timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Show verbose output")
	rootCmd.PersistentFlags().StringVarP(output, "output", "o", "table", "Output format: table, json")
}

// Package config provides CLI-level flag state for spobatchctl, distinct
// from internal/config's Config value: this package holds how the CLI was
// invoked, the library package holds what the batch client needs to run.
package config

import "github.com/batchwerk/spobatch/internal/version"

// Version is the current spobatchctl CLI version.
var Version = version.CLIVersion

// Global holds the global CLI flags shared by every subcommand.
var Global struct {
	SiteURL      string // SharePoint REST site root to batch requests against
	GraphBaseURI string // Microsoft Graph service root
	TenantID     string // Azure AD tenant ID
	ClientID     string // Azure AD application (client) ID
	ClientSecret string // Client secret used to sign the JWT bearer assertion
	TokenURL     string // Azure AD v2 token endpoint; ignored in --local mode
	Local        bool   // Run the demo against an in-process fake batch server
	LogLevel     string // Log level: DEBUG, INFO, WARN, ERROR
	Timeout      int    // Per-batch HTTP timeout in seconds
	Output       string // Output format: table, json
	Verbose      bool   // Show verbose output
}

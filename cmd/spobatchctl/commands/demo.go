package commands

import (
	"github.com/spf13/cobra"

	"github.com/batchwerk/spobatch/cmd/spobatchctl/config"
)

// demoCmd runs the fixed demo batch: two REST GETs against the same site
// followed by one Graph GET, so the batch is split into a REST leg and a
// GRAPH leg.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Queue and execute a handful of demo batch operations",
	Long: `Queues a small, fixed set of GET operations onto a single Batch
and executes it, printing the reconciled per-request results.

In --local mode (the default if no --site is given) the demo spins up an
in-process fake batch server instead of calling a real tenant, so the
command can be run with no Azure AD credentials at all.`,
	Args: cobra.NoArgs,
	// RunE is assigned by main.go
}

// GetDemoCommand returns the demo command for handler assignment.
func GetDemoCommand() *cobra.Command { return demoCmd }

// SetupDemoFlags configures the demo command's flags.
func SetupDemoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.Global.SiteURL, "site", "", "SharePoint REST site root, e.g. https://contoso.sharepoint.com/sites/team")
	cmd.Flags().StringVar(&config.Global.GraphBaseURI, "graph-base-uri", "https://graph.microsoft.com", "Microsoft Graph service root")
	cmd.Flags().StringVar(&config.Global.TenantID, "tenant-id", "", "Azure AD tenant ID")
	cmd.Flags().StringVar(&config.Global.ClientID, "client-id", "", "Azure AD application (client) ID")
	cmd.Flags().StringVar(&config.Global.ClientSecret, "client-secret", "", "Client secret used to sign the JWT bearer assertion")
	cmd.Flags().StringVar(&config.Global.TokenURL, "token-url", "", "Azure AD v2 token endpoint (defaults to the tenant's common endpoint)")
	cmd.Flags().BoolVar(&config.Global.Local, "local", false, "Run against an in-process fake batch server instead of a real tenant")
}

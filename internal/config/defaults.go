// Package config provides configuration for the spobatch batch client,
// covering both the ambient settings (log level, HTTP timeout) and the
// domain settings specific to REST/Graph batch dispatch (site roots, Graph
// base URI). This centralizes configuration management the same way the
// teacher's config package does for its daemon/CLI pair.
package config

import (
	"time"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/batchwerk/spobatch/internal/logging"
	"github.com/batchwerk/spobatch/internal/validate"
)

const (
	// DefaultLogLevel is the default log level for all components.
	// INFO provides good balance of visibility without verbose debug output.
	DefaultLogLevel = "INFO"

	// DefaultHTTPTimeout bounds how long a single framed HTTP call (one REST
	// per-site sub-batch, or the Graph batch) is allowed to take.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultGraphBaseURI is the production Microsoft Graph service root.
	DefaultGraphBaseURI = "https://graph.microsoft.com"
)

// Config holds all configuration required to construct a batch client:
// the REST site root it is allowed to address, the Graph base URI, and
// ambient HTTP/logging settings.
type Config struct {
	// SiteURL is the SharePoint REST site root, e.g.
	// "https://contoso.sharepoint.com/sites/team". Individual request URLs
	// are expected to be rooted under this (or another) site; the REST
	// framer partitions by whatever prefix actually precedes "/_api/".
	SiteURL string `json:"site_url" mapstructure:"site_url"`

	// GraphBaseURI is the Microsoft Graph service root used to build the
	// "beta/$batch" endpoint.
	GraphBaseURI string `json:"graph_base_uri" mapstructure:"graph_base_uri"`

	// HTTPTimeout bounds each framed HTTP call made during ExecuteBatch.
	HTTPTimeout time.Duration `json:"http_timeout" mapstructure:"http_timeout"`

	// LogLevel controls verbosity of the batch client's structured logger.
	LogLevel string `json:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns a Config instance with production-ready default
// values. SiteURL has no sane default and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		GraphBaseURI: DefaultGraphBaseURI,
		HTTPTimeout:  DefaultHTTPTimeout,
		LogLevel:     DefaultLogLevel,
	}
}

// Validate performs comprehensive validation of the configuration,
// aggregating every failure (rather than stopping at the first) so an
// operator sees the full list of problems in one pass.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validate.ValidateSiteURL(c.SiteURL); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validate.ValidateGraphBaseURI(c.GraphBaseURI); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validate.ValidatePositiveTimeout(c.HTTPTimeout, "http_timeout"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := logging.ValidateLogLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

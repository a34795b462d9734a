package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GraphBaseURI != DefaultGraphBaseURI {
		t.Errorf("GraphBaseURI = %q, want %q", cfg.GraphBaseURI, DefaultGraphBaseURI)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, DefaultHTTPTimeout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.SiteURL != "" {
		t.Errorf("SiteURL = %q, want empty (no sane default)", cfg.SiteURL)
	}
}

func TestConfigValidateRejectsMissingSiteURL(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to fail with no SiteURL set")
	}
}

func TestConfigValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := &Config{
		SiteURL:      "https://contoso.sharepoint.com/sites/team",
		GraphBaseURI: DefaultGraphBaseURI,
		HTTPTimeout:  10 * time.Second,
		LogLevel:     "INFO",
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config to pass, got: %v", err)
	}
}

func TestConfigValidateAggregatesFailures(t *testing.T) {
	cfg := &Config{
		SiteURL:      "not-a-url",
		GraphBaseURI: "",
		HTTPTimeout:  -1,
		LogLevel:     "VERBOSE",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected Validate to fail")
	}

	msg := err.Error()
	for _, want := range []string{"site url", "graph base uri", "http_timeout", "log level"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected aggregated error to mention %q, got: %s", want, msg)
		}
	}
}

func TestConfigValidateRejectsAPIRootedSiteURL(t *testing.T) {
	cfg := &Config{
		SiteURL:      "https://contoso.sharepoint.com/sites/team/_api/web",
		GraphBaseURI: DefaultGraphBaseURI,
		HTTPTimeout:  10 * time.Second,
		LogLevel:     "INFO",
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject a site url containing /_api/")
	}
}

// Package validate provides URL and endpoint validation for spobatch,
// ensuring the two API families (REST site roots and the Graph base URI)
// are well-formed before the batch client ever attempts to frame a request.
//
// Implements format validation using the go-playground/validator library.
// Prevents malformed endpoint configuration from surfacing as confusing
// transport errors deep inside a batch dispatch.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateField validates individual values against specified validation rules
// using the go-playground/validator library. Useful for one-off validation
// scenarios that don't warrant a dedicated struct.
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateSiteURL validates a SharePoint REST site root, e.g.
// "https://contoso.sharepoint.com/sites/team". Requires an absolute https
// URL; the batch client derives per-request site partitioning by locating
// "/_api/" inside a request URL that starts with a root like this one.
func ValidateSiteURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("site url cannot be empty")
	}
	if err := ValidateField(raw, "required,url"); err != nil {
		return fmt.Errorf("invalid site url %q: %w", raw, err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid site url %q: %w", raw, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("site url %q must use https", raw)
	}
	if strings.Contains(raw, "/_api/") {
		return fmt.Errorf("site url %q must be a root, not an _api path", raw)
	}
	return nil
}

// ValidateGraphBaseURI validates the Microsoft Graph base URI used to build
// the "beta/$batch" endpoint, e.g. "https://graph.microsoft.com".
func ValidateGraphBaseURI(raw string) error {
	if raw == "" {
		return fmt.Errorf("graph base uri cannot be empty")
	}
	if err := ValidateField(raw, "required,url"); err != nil {
		return fmt.Errorf("invalid graph base uri %q: %w", raw, err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid graph base uri %q: %w", raw, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("graph base uri %q must use https", raw)
	}
	return nil
}

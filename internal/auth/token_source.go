package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AADTokenSource is the default TokenSource: it POSTs the signed JWT
// assertion to an Azure AD v2 token endpoint using the
// "client_credentials" grant with a "client_assertion" instead of a raw
// client secret, and parses the standard OAuth2 token response.
type AADTokenSource struct {
	client   *resty.Client
	tokenURL string
	scope    string
	clientID string
}

// NewAADTokenSource builds a TokenSource against tokenURL (the tenant's
// v2.0 token endpoint), requesting a token scoped to scope on behalf of
// clientID.
func NewAADTokenSource(tokenURL, scope, clientID string) *AADTokenSource {
	return &AADTokenSource{
		client:   resty.New().SetTimeout(15 * time.Second),
		tokenURL: tokenURL,
		scope:    scope,
		clientID: clientID,
	}
}

type aadTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

// FetchToken implements TokenSource.
func (s *AADTokenSource) FetchToken(ctx context.Context, assertion string) (string, time.Duration, error) {
	var out aadTokenResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":             s.clientID,
			"client_assertion_type": "urn:ietf:params:oauth:client-assertion-type:jwt-bearer",
			"client_assertion":      assertion,
			"grant_type":            "client_credentials",
			"scope":                 s.scope,
		}).
		SetResult(&out).
		Post(s.tokenURL)
	if err != nil {
		return "", 0, fmt.Errorf("auth: token endpoint request failed: %w", err)
	}
	if resp.IsError() {
		return "", 0, fmt.Errorf("auth: token endpoint returned %s: %s (%s)", resp.Status(), out.Error, out.ErrorDesc)
	}
	if out.AccessToken == "" {
		return "", 0, fmt.Errorf("auth: token endpoint response carried no access_token")
	}

	return out.AccessToken, time.Duration(out.ExpiresIn) * time.Second, nil
}

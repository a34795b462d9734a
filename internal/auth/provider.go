// Package auth implements the client-credentials / JWT-bearer-assertion flow
// used to authenticate against SharePoint REST and Microsoft Graph, giving
// batchclient.AuthenticationProvider a concrete default implementation.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/batchwerk/spobatch/internal/logging"
	"github.com/batchwerk/spobatch/internal/validate"
)

// Credentials identifies the AAD app-only client this provider authenticates
// as. ClientSecret signs the JWT bearer assertion exchanged for an access
// token; a real deployment would source it from a secret store rather than
// holding it in process memory this long, but that concern is outside the
// scope of this client.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Audience     string // token endpoint / resource audience this token is scoped to
}

// Validate reports whether every field required to sign and exchange a
// client assertion has been supplied, aggregating every missing field
// rather than stopping at the first.
func (c Credentials) Validate() error {
	var result *multierror.Error

	if err := validate.ValidateRequiredString(c.TenantID, "tenant id"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validate.ValidateRequiredString(c.ClientID, "client id"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validate.ValidateRequiredString(c.ClientSecret, "client secret"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validate.ValidateRequiredString(c.Audience, "audience"); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// TokenSource exchanges signed assertions for bearer access tokens. The
// default Provider talks to an AAD-style token endpoint; tests substitute a
// fake that returns canned tokens without any network traffic.
type TokenSource interface {
	FetchToken(ctx context.Context, assertion string) (token string, expiresIn time.Duration, err error)
}

// Provider is a batchclient.AuthenticationProvider that caches a bearer
// token until shortly before it expires, re-minting a JWT assertion and
// exchanging it for a fresh token only when the cache misses.
//
// Safe for concurrent use: ExecuteBatch calls are single-threaded per spec,
// but a caller may hold one Provider across several concurrently-running
// BatchClient instances (e.g. one per site collection), so the token cache
// is guarded by a mutex.
type Provider struct {
	creds  Credentials
	source TokenSource

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewProvider constructs a Provider that exchanges assertions through
// source. clockSkew is subtracted from the token's reported lifetime so a
// batch already in flight when the token is close to expiring doesn't get
// authenticated with a token that expires mid-request.
func NewProvider(creds Credentials, source TokenSource) *Provider {
	return &Provider{creds: creds, source: source}
}

// Authenticate implements batchclient.AuthenticationProvider. It stamps req
// with an Authorization: Bearer header, minting a fresh token only if the
// cached one has expired or is about to.
func (p *Provider) Authenticate(ctx context.Context, targetURI string, req *http.Request) error {
	token, err := p.currentToken(ctx)
	if err != nil {
		return fmt.Errorf("auth: fetching token for %s: %w", targetURI, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

const clockSkew = 60 * time.Second

func (p *Provider) currentToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiresAt) {
		return p.token, nil
	}

	assertion, err := p.signAssertion()
	if err != nil {
		return "", err
	}

	logging.Debug("auth: exchanging client assertion for tenant %s", p.creds.TenantID)

	token, expiresIn, err := p.source.FetchToken(ctx, assertion)
	if err != nil {
		return "", err
	}

	p.token = token
	p.expiresAt = time.Now().Add(expiresIn - clockSkew)
	return p.token, nil
}

// signAssertion builds and signs the JWT bearer assertion presented to the
// token endpoint in place of a client secret sent in the clear, per the AAD
// client-credentials-with-certificate/assertion pattern.
func (p *Provider) signAssertion() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"aud": p.creds.Audience,
		"iss": p.creds.ClientID,
		"sub": p.creds.ClientID,
		"jti": fmt.Sprintf("%s-%d", p.creds.ClientID, now.UnixNano()),
		"nbf": now.Unix(),
		"exp": now.Add(10 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.creds.ClientSecret))
	if err != nil {
		return "", fmt.Errorf("auth: signing assertion: %w", err)
	}
	return signed, nil
}

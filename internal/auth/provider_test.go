package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenSource struct {
	calls   int
	token   string
	ttl     time.Duration
	fetched []string
}

func (f *fakeTokenSource) FetchToken(ctx context.Context, assertion string) (string, time.Duration, error) {
	f.calls++
	f.fetched = append(f.fetched, assertion)
	return f.token, f.ttl, nil
}

func testCreds() Credentials {
	return Credentials{TenantID: "tenant", ClientID: "client", ClientSecret: "secret", Audience: "https://login.example.com/token"}
}

func TestAuthenticateStampsBearerHeader(t *testing.T) {
	source := &fakeTokenSource{token: "abc123", ttl: 10 * time.Minute}
	provider := NewProvider(testCreds(), source)

	req, err := http.NewRequest(http.MethodGet, "https://host/_api/web", nil)
	require.NoError(t, err)

	require.NoError(t, provider.Authenticate(context.Background(), "https://host", req))
	assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))
	assert.Equal(t, 1, source.calls)
}

func TestAuthenticateCachesTokenUntilNearExpiry(t *testing.T) {
	source := &fakeTokenSource{token: "abc123", ttl: 10 * time.Minute}
	provider := NewProvider(testCreds(), source)

	req1, _ := http.NewRequest(http.MethodGet, "https://host/_api/web", nil)
	req2, _ := http.NewRequest(http.MethodGet, "https://host/_api/web", nil)

	require.NoError(t, provider.Authenticate(context.Background(), "https://host", req1))
	require.NoError(t, provider.Authenticate(context.Background(), "https://host", req2))

	assert.Equal(t, 1, source.calls, "second Authenticate should reuse the cached token")
}

func TestAuthenticateRefetchesAfterExpiry(t *testing.T) {
	source := &fakeTokenSource{token: "abc123", ttl: clockSkew}
	provider := NewProvider(testCreds(), source)

	req, _ := http.NewRequest(http.MethodGet, "https://host/_api/web", nil)
	require.NoError(t, provider.Authenticate(context.Background(), "https://host", req))
	require.NoError(t, provider.Authenticate(context.Background(), "https://host", req))

	assert.Equal(t, 2, source.calls, "a token whose ttl is entirely consumed by clock skew must be refetched immediately")
}

func TestCredentialsValidateAcceptsFullySpecifiedCredentials(t *testing.T) {
	assert.NoError(t, testCreds().Validate())
}

func TestCredentialsValidateAggregatesMissingFields(t *testing.T) {
	err := Credentials{}.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"tenant id", "client id", "client secret", "audience"} {
		assert.Contains(t, msg, want)
	}
}

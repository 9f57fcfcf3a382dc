package oauth

import (
	"context"
	"time"
)

// requestTimeout bounds every outbound provider call, connect included.
const requestTimeout = 2 * time.Second

// Provider represents an OAuth provider.
type Provider interface {
	// Name provides the name of the provider.
	Name() string

	// AuthURL returns the URL to the auth page of the provider.
	AuthURL() string

	// Exchange converts the auth code to an access token.
	//
	// The "state" parameter is only used by providers that issue one.
	// A provider-side failure is reported through TokenResult.AccessToken
	// being empty, not through the error.
	Exchange(ctx context.Context, code, state string) (TokenResult, error)

	// FetchIdentity fetches the user's profile with the given access token and
	// normalizes it into the canonical Identity.
	FetchIdentity(ctx context.Context, accessToken string) (Identity, error)
}

// TokenResult is the outcome of a code-to-token exchange.
type TokenResult struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`

	// Error and ErrorDescription are populated when the provider reports
	// a failure in the response body instead of issuing a token.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Identity is the canonical user identity shared across all providers.
//
// ExternalID is always present when normalization succeeds. Nickname is
// always derived (every provider has a fallback chain ending in a default),
// all other fields may be empty.
type Identity struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
}

package handler

import (
	"context"

	"github.com/yujinlab/authgate/internal/oauth"
)

// mockProvider is a mock implementation of the oauth.Provider interface.
type mockProvider struct {
	// To mock the Name method.
	name string
	// To mock the AuthURL method.
	authURL string
	// To mock the Exchange method.
	argCode     string
	argState    string
	errExchange error
	tokenResult oauth.TokenResult
	// To mock the FetchIdentity method.
	argAccessToken string
	errFetch       error
	identity       oauth.Identity
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) AuthURL() string {
	return m.authURL
}

func (m *mockProvider) Exchange(_ context.Context, code, state string) (oauth.TokenResult, error) {
	m.argCode, m.argState = code, state
	if m.errExchange != nil {
		return oauth.TokenResult{}, m.errExchange
	}
	return m.tokenResult, nil
}

func (m *mockProvider) FetchIdentity(_ context.Context, accessToken string) (oauth.Identity, error) {
	m.argAccessToken = accessToken
	if m.errFetch != nil {
		return oauth.Identity{}, m.errFetch
	}
	return m.identity, nil
}

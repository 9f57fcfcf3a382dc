package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yujinlab/authgate/internal/config"
)

// googleScopes is the minimal scope set needed for the profile call.
const googleScopes = "openid email profile"

// Google implements the Provider interface for Google.
//
// Read documentation here: https://developers.google.com/identity/protocols/oauth2/web-server
type Google struct {
	cfg config.Provider
	// parsedAuthURL removes the need to repeatedly parse the auth URL.
	parsedAuthURL *url.URL
	httpClient    *http.Client
}

// NewGoogle instantiates a new Google provider instance.
func NewGoogle(cfg config.Provider) *Google {
	return &Google{
		cfg:           cfg,
		parsedAuthURL: mustParseURL(cfg.AuthURL),
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (g *Google) Name() string {
	return "google"
}

func (g *Google) AuthURL() string {
	var u = &url.URL{}
	// Copy the auth URL value into local pointer. This must not modify the original URL variable.
	*u = *g.parsedAuthURL

	// Add all query parameters.
	q := u.Query()
	q.Set("client_id", g.cfg.ClientID)
	q.Set("redirect_uri", g.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", googleScopes)

	u.RawQuery = q.Encode()
	return u.String()
}

func (g *Google) Exchange(ctx context.Context, code, _ string) (TokenResult, error) {
	// Request body. Google requires the client secret.
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", g.cfg.ClientID)
	form.Set("client_secret", g.cfg.ClientSecret)
	form.Set("redirect_uri", g.cfg.RedirectURI)
	form.Set("code", code)

	var result TokenResult
	if err := postForm(ctx, g.httpClient, g.cfg.TokenURL, form, &result); err != nil {
		return TokenResult{}, fmt.Errorf("google token exchange failed: %w", err)
	}

	return result, nil
}

func (g *Google) FetchIdentity(ctx context.Context, accessToken string) (Identity, error) {
	var raw googleUserinfo
	if err := getBearer(ctx, g.httpClient, g.cfg.APIURL+"/userinfo", accessToken, &raw); err != nil {
		return Identity{}, fmt.Errorf("google userinfo fetch failed: %w", err)
	}

	return normalizeGoogle(raw), nil
}

// googleUserinfo is the schema of the response from Google's userinfo endpoint.
type googleUserinfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// normalizeGoogle converts Google's raw profile into the canonical Identity.
//
// Nickname fallback chain: display name, then the local part of the email,
// then a default of the form "구글사용자_<id>".
func normalizeGoogle(raw googleUserinfo) Identity {
	nickname := raw.Name
	if nickname == "" && raw.Email != "" {
		nickname = emailLocalPart(raw.Email)
	}
	if nickname == "" {
		nickname = "구글사용자_" + raw.ID
	}

	return Identity{
		ExternalID: raw.ID,
		Email:      raw.Email,
		Nickname:   nickname,
		Name:       raw.Name,
	}
}

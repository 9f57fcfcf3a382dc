package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/yujinlab/authgate/internal/config"
)

// Naver implements the Provider interface for Naver.
//
// Read documentation here: https://developers.naver.com/docs/login/api/api.md
type Naver struct {
	cfg config.Provider
	// parsedAuthURL removes the need to repeatedly parse the auth URL.
	parsedAuthURL *url.URL
	httpClient    *http.Client
}

// NewNaver instantiates a new Naver provider instance.
func NewNaver(cfg config.Provider) *Naver {
	return &Naver{
		cfg:           cfg,
		parsedAuthURL: mustParseURL(cfg.AuthURL),
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (n *Naver) Name() string {
	return "naver"
}

func (n *Naver) AuthURL() string {
	var u = &url.URL{}
	// Copy the auth URL value into local pointer. This must not modify the original URL variable.
	*u = *n.parsedAuthURL

	// Add all query parameters.
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", n.cfg.ClientID)
	q.Set("redirect_uri", n.cfg.RedirectURI)
	// A fresh state value is generated on every call, but the callback never
	// checks it against anything, so it provides no CSRF protection.
	// Kept as-is because validating it would change external behaviour.
	q.Set("state", uuid.NewString())

	u.RawQuery = q.Encode()
	return u.String()
}

func (n *Naver) Exchange(ctx context.Context, code, state string) (TokenResult, error) {
	// Request body. Naver requires both the client secret and the state.
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", n.cfg.ClientID)
	form.Set("client_secret", n.cfg.ClientSecret)
	form.Set("redirect_uri", n.cfg.RedirectURI)
	form.Set("code", code)
	form.Set("state", state)

	var result TokenResult
	if err := postForm(ctx, n.httpClient, n.cfg.TokenURL, form, &result); err != nil {
		return TokenResult{}, fmt.Errorf("naver token exchange failed: %w", err)
	}

	return result, nil
}

func (n *Naver) FetchIdentity(ctx context.Context, accessToken string) (Identity, error) {
	var raw naverUserinfo
	if err := getBearer(ctx, n.httpClient, n.cfg.APIURL+"/me", accessToken, &raw); err != nil {
		return Identity{}, fmt.Errorf("naver userinfo fetch failed: %w", err)
	}

	return normalizeNaver(raw), nil
}

// naverUserinfo is the schema of the response from Naver's profile endpoint.
// The actual profile is nested under "response"; resultcode and message form
// Naver's own status envelope.
type naverUserinfo struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
	} `json:"response"`
}

// normalizeNaver converts Naver's raw profile into the canonical Identity.
//
// Nickname fallback chain: nested nickname, then nested name, then the local
// part of the email, then a default of the form "네이버사용자_<id>".
func normalizeNaver(raw naverUserinfo) Identity {
	resp := raw.Response

	nickname := resp.Nickname
	if nickname == "" {
		nickname = resp.Name
	}
	if nickname == "" && resp.Email != "" {
		nickname = emailLocalPart(resp.Email)
	}
	if nickname == "" {
		nickname = "네이버사용자_" + resp.ID
	}

	return Identity{
		ExternalID: resp.ID,
		Email:      resp.Email,
		Nickname:   nickname,
		Name:       resp.Name,
	}
}

package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yujinlab/authgate/internal/config"
)

// Kakao implements the Provider interface for Kakao.
//
// Read documentation here: https://developers.kakao.com/docs/latest/en/kakaologin/rest-api
type Kakao struct {
	cfg config.Provider
	// parsedAuthURL removes the need to repeatedly parse the auth URL.
	parsedAuthURL *url.URL
	httpClient    *http.Client
}

// NewKakao instantiates a new Kakao provider instance.
func NewKakao(cfg config.Provider) *Kakao {
	return &Kakao{
		cfg:           cfg,
		parsedAuthURL: mustParseURL(cfg.AuthURL),
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (k *Kakao) Name() string {
	return "kakao"
}

func (k *Kakao) AuthURL() string {
	var u = &url.URL{}
	// Copy the auth URL value into local pointer. This must not modify the original URL variable.
	*u = *k.parsedAuthURL

	// Add all query parameters.
	q := u.Query()
	q.Set("client_id", k.cfg.ClientID)
	q.Set("redirect_uri", k.cfg.RedirectURI)
	q.Set("response_type", "code")

	u.RawQuery = q.Encode()
	return u.String()
}

func (k *Kakao) Exchange(ctx context.Context, code, _ string) (TokenResult, error) {
	// Request body. Kakao does not use a client secret.
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", k.cfg.ClientID)
	form.Set("redirect_uri", k.cfg.RedirectURI)
	form.Set("code", code)

	var result TokenResult
	if err := postForm(ctx, k.httpClient, k.cfg.TokenURL, form, &result); err != nil {
		return TokenResult{}, fmt.Errorf("kakao token exchange failed: %w", err)
	}

	return result, nil
}

func (k *Kakao) FetchIdentity(ctx context.Context, accessToken string) (Identity, error) {
	var raw kakaoUserinfo
	if err := getBearer(ctx, k.httpClient, k.cfg.APIURL+"/v2/user/me", accessToken, &raw); err != nil {
		return Identity{}, fmt.Errorf("kakao userinfo fetch failed: %w", err)
	}

	return normalizeKakao(raw), nil
}

// kakaoUserinfo is the schema of the response from Kakao's user/me endpoint.
// The id is numeric; everything else is nested under kakao_account.
type kakaoUserinfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// normalizeKakao converts Kakao's raw profile into the canonical Identity.
//
// Nickname fallback chain: the nested profile nickname, then a default of the
// form "카카오사용자_<id>". A zero id means the profile call failed.
func normalizeKakao(raw kakaoUserinfo) Identity {
	var externalID string
	if raw.ID != 0 {
		externalID = strconv.FormatInt(raw.ID, 10)
	}

	nickname := raw.KakaoAccount.Profile.Nickname
	if nickname == "" {
		nickname = "카카오사용자_" + externalID
	}

	return Identity{
		ExternalID: externalID,
		Email:      raw.KakaoAccount.Email,
		Nickname:   nickname,
		Name:       nickname,
	}
}

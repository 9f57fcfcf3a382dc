package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/yujinlab/authgate/internal/config"
	"github.com/yujinlab/authgate/internal/oauth"
	"github.com/yujinlab/authgate/internal/repository"
	"github.com/yujinlab/authgate/internal/token"
)

// newTestIssuer creates a real issuer for handler tests.
func newTestIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer("mock-signing-secret", time.Hour)
	require.NoError(t, err, "Failed to create issuer")
	return issuer
}

// createCallbackWR creates a mock response writer and request for the Callback handler.
func createCallbackWR(provider, code, state string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodGet, "/mock", nil)
	req = mux.SetURLVars(req, map[string]string{"provider": provider})

	q := req.URL.Query()
	q.Set("code", code)
	q.Set("state", state)
	req.URL.RawQuery = q.Encode()

	return httptest.NewRecorder(), req
}

// requireErrorRedirect asserts that the response is a 302 to the front-end
// root carrying the given error message, with no session cookie.
func requireErrorRedirect(t *testing.T, w *httptest.ResponseRecorder, frontendURL, errSubstring string) {
	t.Helper()

	require.Equal(t, http.StatusFound, w.Code, "Expected 302 status code")

	parsed, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err, "Expected Location header to be a valid URL")
	require.Equal(t, frontendURL+"/", parsed.Scheme+"://"+parsed.Host+parsed.Path, "Wrong redirect target")
	require.Contains(t, parsed.Query().Get("error"), errSubstring, "Wrong error message")

	require.Empty(t, w.Header().Get("Set-Cookie"), "No cookie should be set on failure")
}

func TestHandler_Callback_Failures(t *testing.T) {
	mConf := config.LoadMock()
	mFrontend := mConf.Google.FrontendURL
	errMock := errors.New("mock error")

	for _, tc := range []struct {
		name string
		// Mock inputs.
		providerFunc  func() *mockProvider
		inputProvider string
		inputCode     string
		// Expectations.
		errSubstring string
	}{
		{
			name:          "Unsupported provider fails fast",
			providerFunc:  func() *mockProvider { return &mockProvider{name: "google"} },
			inputProvider: "facebook",
			inputCode:     "mock-code",
			errSubstring:  oauth.ErrUnsupportedProvider.Error(),
		},
		{
			name:          "Absent auth code",
			providerFunc:  func() *mockProvider { return &mockProvider{name: "google"} },
			inputProvider: "google",
			inputCode:     "",
			errSubstring:  errInvalidCode.Error(),
		},
		{
			name:          "Invalid characters in auth code",
			providerFunc:  func() *mockProvider { return &mockProvider{name: "google"} },
			inputProvider: "google",
			inputCode:     "code$$",
			errSubstring:  errInvalidCode.Error(),
		},
		{
			name: "Token exchange transport error",
			providerFunc: func() *mockProvider {
				return &mockProvider{name: "google", errExchange: errMock}
			},
			inputProvider: "google",
			inputCode:     "mock-code",
			errSubstring:  msgTokenExchangeFailed,
		},
		{
			name: "Provider reports an error instead of a token",
			providerFunc: func() *mockProvider {
				return &mockProvider{name: "google", tokenResult: oauth.TokenResult{Error: "invalid_grant"}}
			},
			inputProvider: "google",
			inputCode:     "mock-code",
			errSubstring:  msgTokenExchangeFailed,
		},
		{
			name: "Profile fetch error",
			providerFunc: func() *mockProvider {
				return &mockProvider{
					name:        "google",
					tokenResult: oauth.TokenResult{AccessToken: "mock-access-token"},
					errFetch:    errMock,
				}
			},
			inputProvider: "google",
			inputCode:     "mock-code",
			errSubstring:  msgProfileFetchFailed,
		},
		{
			name: "Profile without an external id",
			providerFunc: func() *mockProvider {
				return &mockProvider{
					name:        "google",
					tokenResult: oauth.TokenResult{AccessToken: "mock-access-token"},
					identity:    oauth.Identity{Nickname: "mockNick"},
				}
			},
			inputProvider: "google",
			inputCode:     "mock-code",
			errSubstring:  msgProfileFetchFailed,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mHandler := &Handler{
				config:   mConf,
				registry: oauth.NewRegistry(tc.providerFunc()),
				issuer:   newTestIssuer(t),
				repo:     &mockRepository{},
			}

			w, r := createCallbackWR(tc.inputProvider, tc.inputCode, "")
			mHandler.Callback(w, r)

			requireErrorRedirect(t, w, mFrontend, tc.errSubstring)
		})
	}
}

func TestHandler_Callback_Success(t *testing.T) {
	mConf := config.LoadMock()
	mIssuer := newTestIssuer(t)

	mProvider := &mockProvider{
		name:        "google",
		tokenResult: oauth.TokenResult{AccessToken: "mock-access-token", TokenType: "bearer"},
		identity: oauth.Identity{
			ExternalID: "12345",
			Email:      "mock@gmail.com",
			Nickname:   "mockNick",
		},
	}

	mHandler := &Handler{
		config:   mConf,
		registry: oauth.NewRegistry(mProvider),
		issuer:   mIssuer,
		repo:     &mockRepository{},
	}

	w, r := createCallbackWR("google", "mock-code", "mock-state")
	mHandler.Callback(w, r)

	// Verify the success redirect.
	require.Equal(t, http.StatusFound, w.Code, "Expected 302 status code")
	expectedLocation := mConf.Google.FrontendURL + "/auth/google/callback?provider=google"
	require.Equal(t, expectedLocation, w.Header().Get("Location"), "Wrong redirect target")

	// Verify the arguments passed down to the provider.
	require.Equal(t, "mock-code", mProvider.argCode, "Wrong code passed to Exchange")
	require.Equal(t, "mock-state", mProvider.argState, "Wrong state passed to Exchange")
	require.Equal(t, "mock-access-token", mProvider.argAccessToken, "Wrong access token passed to FetchIdentity")

	// Verify the session cookie.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1, "Expected exactly one cookie")
	cookie := cookies[0]
	require.Equal(t, sessionCookieName, cookie.Name, "Wrong cookie name")
	require.True(t, cookie.HttpOnly, "Cookie must be HttpOnly")
	require.Equal(t, "/", cookie.Path, "Wrong cookie path")
	require.Equal(t, sessionCookieMaxAge, cookie.MaxAge, "Wrong cookie max-age")
	require.Equal(t, mConf.Cookie.Secure, cookie.Secure, "Wrong cookie secure flag")

	// The cookie value is a valid credential carrying the identity.
	claims, err := mIssuer.Validate(cookie.Value)
	require.NoError(t, err, "Cookie value is not a valid credential")
	require.Equal(t, int64(12345), claims.UserID, "Wrong userID claim")
	require.Equal(t, "google", claims.Provider, "Wrong provider claim")
	require.Equal(t, "mock@gmail.com", claims.Email, "Wrong email claim")
	require.Equal(t, "mockNick", claims.Nickname, "Wrong nickname claim")
}

func TestHandler_Callback_UpsertsUser(t *testing.T) {
	mConf := config.LoadMock()

	mProvider := &mockProvider{
		name:        "kakao",
		tokenResult: oauth.TokenResult{AccessToken: "mock-access-token"},
		identity:    oauth.Identity{ExternalID: "4242", Email: "mock@kakao.com", Nickname: "mockNick"},
	}
	mRepo := &mockRepository{users: make(chan repository.User, 1)}

	mHandler := &Handler{
		config:   mConf,
		registry: oauth.NewRegistry(mProvider),
		issuer:   newTestIssuer(t),
		repo:     mRepo,
	}

	w, r := createCallbackWR("kakao", "mock-code", "")
	mHandler.Callback(w, r)
	require.Equal(t, http.StatusFound, w.Code, "Expected 302 status code")

	// The upsert runs asynchronously, so wait for it.
	select {
	case user := <-mRepo.users:
		require.Equal(t, int64(4242), user.ID, "Wrong user id")
		require.Equal(t, "kakao", user.Provider, "Wrong provider")
		require.Equal(t, "mock@kakao.com", user.Email, "Wrong email")
		require.Equal(t, "mockNick", user.Nickname, "Wrong nickname")
	case <-time.After(time.Second):
		t.Fatal("Expected the user to be upserted")
	}
}

func TestDeriveUserID(t *testing.T) {
	// Numeric external ids are used as-is.
	require.Equal(t, int64(12345), deriveUserID("12345"), "Numeric id should parse directly")

	// Non-numeric ids hash deterministically.
	first := deriveUserID("abc-xyz")
	second := deriveUserID("abc-xyz")
	require.Equal(t, first, second, "Hash fallback is not deterministic")
	require.NotZero(t, first, "Hash fallback produced zero")

	// Different external ids map to different user ids.
	require.NotEqual(t, deriveUserID("abc-xyz"), deriveUserID("xyz-abc"), "Different ids collided")
}

package handler

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yujinlab/authgate/internal/repository"
	"github.com/yujinlab/authgate/internal/utils/httputils"
)

// sessionCookieName is the name of the cookie that carries the session credential.
const sessionCookieName = "token"

// sessionCookieMaxAge is the cookie lifetime in seconds. It is fixed at 24
// hours, independent of the credential's own expiry.
const sessionCookieMaxAge = 86400

// Error messages surfaced to the front-end through the error redirect.
const (
	msgTokenExchangeFailed = "액세스 토큰 발급 실패"
	msgProfileFetchFailed  = "사용자 정보 조회 실패"
)

// Callback handles the provider's OAuth callback.
//
// The flow is linear with short-circuit failure branches, and the terminal
// state is always a 302: either to the front-end callback page with the
// session cookie set, or to the front-end root with an error query parameter.
// No failure in this handler ever surfaces as a raw fault to the caller.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Provider is a path parameter and so it will always be present.
	providerName := mux.Vars(r)["provider"]
	code, state := r.URL.Query().Get("code"), r.URL.Query().Get("state")

	// All redirects, success or failure, land on this provider's front-end.
	frontendURL := h.frontendURL(providerName)

	// Unknown providers fail fast, before any outbound call.
	provider, err := h.registry.Resolve(providerName)
	if err != nil {
		slog.ErrorContext(ctx, "callback for unsupported provider", "provider", providerName)
		errorRedirect(w, frontendURL, err.Error())
		return
	}

	// Authorization code validation.
	if err := validateAuthCode(code); err != nil {
		slog.ErrorContext(ctx, "invalid code in callback", "error", err)
		errorRedirect(w, frontendURL, err.Error())
		return
	}

	// Exchange the code for a provider access token.
	result, err := provider.Exchange(ctx, code, state)
	if err != nil || result.AccessToken == "" {
		slog.ErrorContext(ctx, "token exchange failed",
			"provider", providerName, "error", err, "providerError", result.Error)
		errorRedirect(w, frontendURL, msgTokenExchangeFailed)
		return
	}

	// Fetch and normalize the user's profile.
	identity, err := provider.FetchIdentity(ctx, result.AccessToken)
	if err != nil || identity.ExternalID == "" {
		slog.ErrorContext(ctx, "profile fetch failed", "provider", providerName, "error", err)
		errorRedirect(w, frontendURL, msgProfileFetchFailed)
		return
	}

	// Derive the stable internal user id.
	userID := deriveUserID(identity.ExternalID)

	// Mint the session credential.
	credential, err := h.issuer.Issue(userID, provider.Name(), identity.Email, identity.Nickname)
	if err != nil {
		slog.ErrorContext(ctx, "error in Issue call", "error", err)
		errorRedirect(w, frontendURL, err.Error())
		return
	}

	// Upsert the user in the database asynchronously.
	go func() {
		// Do not use the request's context for this operation.
		ctx := context.Background()
		user := repository.User{
			ID:       userID,
			Provider: provider.Name(),
			Email:    identity.Email,
			Nickname: identity.Nickname,
		}

		if err := h.repo.UpsertUser(ctx, user); err != nil {
			slog.ErrorContext(ctx, "error in UpsertUser call", "error", err)
		}
	}()

	// Set the session cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		Secure:   h.config.Cookie.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(h.config.Cookie.SameSite),
	})

	slog.InfoContext(ctx, "login successful", "provider", providerName, "userID", userID)

	// Success redirect URL.
	redirectURL := fmt.Sprintf("%s/auth/%s/callback?provider=%s", frontendURL, providerName, providerName)
	headers := map[string]string{"Location": redirectURL}
	httputils.Write(w, http.StatusFound, headers, nil)
}

// deriveUserID converts a provider's external id into the internal int64 id.
//
// Numeric ids are used as-is. Anything else gets a deterministic
// (non-cryptographic) FNV-1a hash, so the same external id always maps to the
// same user id across logins.
func deriveUserID(externalID string) int64 {
	if id, err := strconv.ParseInt(externalID, 10, 64); err == nil {
		return id
	}

	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(externalID))
	return int64(hasher.Sum64())
}

// parseSameSite maps the configured SameSite string to its http constant.
func parseSameSite(value string) http.SameSite {
	switch value {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// errorRedirect redirects the caller (by writing 302 and the Location header to the response) and attaches
// the given error information as a query parameter.
func errorRedirect(w http.ResponseWriter, frontendURL, message string) {
	redirectURL := fmt.Sprintf("%s/?error=%s", frontendURL, url.QueryEscape(message))
	headers := map[string]string{"Location": redirectURL}
	httputils.Write(w, http.StatusFound, headers, nil)
}

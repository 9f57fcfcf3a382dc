package handler

import (
	"net/http"

	"github.com/yujinlab/authgate/internal/config"
	"github.com/yujinlab/authgate/internal/oauth"
	"github.com/yujinlab/authgate/internal/repository"
	"github.com/yujinlab/authgate/internal/token"
	"github.com/yujinlab/authgate/internal/utils/errutils"
	"github.com/yujinlab/authgate/internal/utils/httputils"
)

// Handler encapsulates all REST handlers.
type Handler struct {
	config   config.Config
	registry *oauth.Registry
	issuer   *token.Issuer
	repo     repository.Repository
}

// NewHandler creates a new Handler instance.
func NewHandler(conf config.Config, registry *oauth.Registry, issuer *token.Issuer, repo repository.Repository) *Handler {
	return &Handler{config: conf, registry: registry, issuer: issuer, repo: repo}
}

// NotFound handler can be used to serve any unrecognized routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	httputils.WriteErr(w, errutils.NotFound())
}

// Health returns 200 if everything is running fine.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	info := map[string]string{}
	httputils.Write(w, http.StatusOK, nil, info)
}

// frontendURL returns the front-end base URL configured for the given
// provider. Unknown names fall back to the Google front-end, so that even a
// bad callback still ends on a real page.
func (h *Handler) frontendURL(providerName string) string {
	switch providerName {
	case "kakao":
		return h.config.Kakao.FrontendURL
	case "naver":
		return h.config.Naver.FrontendURL
	default:
		return h.config.Google.FrontendURL
	}
}

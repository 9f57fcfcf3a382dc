package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yujinlab/authgate/internal/utils/httputils"
)

// authURLResponse is the envelope returned by the Login handler.
// Its shape is part of the front-end contract.
type authURLResponse struct {
	Success bool   `json:"success"`
	AuthURL string `json:"authUrl,omitempty"`
	Message string `json:"message,omitempty"`
}

// Login returns the provider's authorization URL for the front-end to
// redirect the user to. It never redirects by itself.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Provider is a path parameter and so it will always be present.
	providerName := mux.Vars(r)["provider"]

	provider, err := h.registry.Resolve(providerName)
	if err != nil {
		slog.ErrorContext(ctx, "auth URL requested for unsupported provider", "provider", providerName)
		body := authURLResponse{Success: false, Message: "인가 URL 생성 실패: " + err.Error()}
		httputils.Write(w, http.StatusInternalServerError, nil, body)
		return
	}

	authURL := provider.AuthURL()
	slog.InfoContext(ctx, "auth URL generated", "provider", providerName)

	httputils.Write(w, http.StatusOK, nil, authURLResponse{Success: true, AuthURL: authURL})
}

package httputils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yujinlab/authgate/internal/utils/errutils"
)

// Write writes the given status code, headers and body to the response writer.
func Write(w http.ResponseWriter, status int, headers map[string]string, body any) {
	for key, value := range headers {
		w.Header().Set(key, value)
	}

	// Body will be written as JSON, if present.
	if body != nil {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(status)
	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response body", "err", err)
	}
}

// WriteErr writes the given error to the response writer.
//
// If the error is an *errutils.HTTPError, its status code and reason are used.
// Otherwise, the response is a generic 500.
func WriteErr(w http.ResponseWriter, err error) {
	httpErr := errutils.InternalServerError()
	errors.As(err, &httpErr)

	Write(w, httpErr.StatusCode, nil, httpErr)
}

// Is2xx returns true if the given status code lies in the 2xx range.
func Is2xx(status int) bool {
	return status >= 200 && status < 300
}

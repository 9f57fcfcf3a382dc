package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/yujinlab/authgate/internal/utils/httputils"
)

// Middleware implements all the REST middleware methods.
type Middleware struct{}

// Recovery converts any panic during request execution into a 500 response.
func (m Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			// Recover the panic.
			errAny := recover()
			if errAny == nil {
				return
			}

			// Stack for debugging.
			stack := string(debug.Stack())
			// Log.
			slog.ErrorContext(r.Context(), "panic occurred during request execution",
				"err", errAny, "stack", stack)

			// Convert to error for handling.
			err, ok := errAny.(error)
			if !ok {
				err = fmt.Errorf("recover returned a non-error type value: %v", errAny)
			}

			// Response.
			httputils.WriteErr(w, err)
		}()

		// Next middleware or handler.
		next.ServeHTTP(w, r)
	})
}

// CORS middleware attaches the necessary CORS headers.
func (m Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// This assumes that this service will sit behind a reverse proxy running on the same machine.
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		// Allow credentials (cookies, HTTP authentication).
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		// Cache preflight requests for 1 hour
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Allow common HTTP methods.
		w.Header().Set("Access-Control-Allow-Methods", fmt.Sprintf("%s %s %s", http.MethodGet,
			http.MethodPost, http.MethodOptions))

		// Allow common headers.
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, "+
			"Accept-Encoding, Authorization, X-Requested-With")

		// Handle preflight requests.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Next middleware or handler.
		next.ServeHTTP(w, r)
	})
}

// AccessLogger logs every request with its status code and latency.
func (m Middleware) AccessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the writer to capture the status code.
		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)

		slog.InfoContext(r.Context(), "request served",
			"method", r.Method, "path", r.URL.Path, "status", cw.status, "latency", time.Since(start))
	})
}

// captureWriter records the status code written to the response.
type captureWriter struct {
	http.ResponseWriter
	status int
}

func (c *captureWriter) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

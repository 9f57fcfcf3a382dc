package errutils

import (
	"fmt"
	"net/http"
)

// HTTPError implements the error interface while also holding the HTTP status
// code that should be sent to the caller.
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason"`
}

func (h *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", h.StatusCode, h.Reason)
}

// WithReasonStr returns a copy of the error with the given reason string.
func (h *HTTPError) WithReasonStr(reason string) *HTTPError {
	return &HTTPError{StatusCode: h.StatusCode, Reason: reason}
}

// WithReasonErr returns a copy of the error with the given error's message as the reason.
func (h *HTTPError) WithReasonErr(reason error) *HTTPError {
	return h.WithReasonStr(reason.Error())
}

// BadRequest is the HTTPError equivalent of the 400 status code.
func BadRequest() *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadRequest, Reason: http.StatusText(http.StatusBadRequest)}
}

// Unauthorized is the HTTPError equivalent of the 401 status code.
func Unauthorized() *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnauthorized, Reason: http.StatusText(http.StatusUnauthorized)}
}

// NotFound is the HTTPError equivalent of the 404 status code.
func NotFound() *HTTPError {
	return &HTTPError{StatusCode: http.StatusNotFound, Reason: http.StatusText(http.StatusNotFound)}
}

// RequestTimeout is the HTTPError equivalent of the 408 status code.
func RequestTimeout() *HTTPError {
	return &HTTPError{StatusCode: http.StatusRequestTimeout, Reason: http.StatusText(http.StatusRequestTimeout)}
}

// InternalServerError is the HTTPError equivalent of the 500 status code.
func InternalServerError() *HTTPError {
	return &HTTPError{StatusCode: http.StatusInternalServerError, Reason: http.StatusText(http.StatusInternalServerError)}
}

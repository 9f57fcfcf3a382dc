package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/yujinlab/authgate/internal/utils/httputils"
)

// postForm sends a form-encoded POST to the given endpoint and decodes the
// JSON response into target.
func postForm(ctx context.Context, client *http.Client, endpoint string, form url.Values, target any) error {
	// Form the HTTP request.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error in http.NewRequestWithContext call: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Execute request.
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error in httpClient.Do call: %w", err)
	}
	// Close response body upon return.
	defer func() { _ = res.Body.Close() }()

	// Error bodies are decoded too. Providers report failures like a bad auth
	// code through the body, and the caller inspects the decoded result.
	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("error in json Decode call: %w", err)
	}

	return nil
}

// getBearer sends a bearer-authenticated GET to the given endpoint and decodes
// the JSON response into target.
func getBearer(ctx context.Context, client *http.Client, endpoint, accessToken string, target any) error {
	// Form the HTTP request.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error in http.NewRequestWithContext call: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	// Execute request.
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error in httpClient.Do call: %w", err)
	}
	// Close response body upon return.
	defer func() { _ = res.Body.Close() }()

	// Check if the request failed.
	if !httputils.Is2xx(res.StatusCode) {
		return fmt.Errorf("request failed with status code: %d", res.StatusCode)
	}

	// Decode the success response.
	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("error in json Decode call: %w", err)
	}

	return nil
}

// mustParseURL parses the given string as a URL. It panics upon error.
//
// It is only meant for provider endpoint URLs, which come from configuration
// and are validated at process start.
func mustParseURL(u string) *url.URL {
	parsed, err := url.Parse(u)
	if err != nil {
		panic("error in url.Parse call: " + err.Error())
	}
	return parsed
}

// emailLocalPart returns the part of the email before the '@'.
func emailLocalPart(email string) string {
	return strings.SplitN(email, "@", 2)[0]
}

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// ErrNoToken is returned by Login when the response carries no token.
var ErrNoToken = errors.New("no token returned from /api/auth/login")

// NoTokenMessage is shown to the operator in place of ErrNoToken.
const NoTokenMessage = "No token returned from /api/auth/login"

// DefaultMessageKeys are the body fields consulted by ErrorMessage.
var DefaultMessageKeys = []string{"error", "message"}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// ErrorMessage picks the operator-facing text for err: the first non-empty string
// among the body fields named by keys, then the error text, then fallback.
func ErrorMessage(err error, fallback string, keys ...string) string {
	if err == nil {
		return fallback
	}
	if errors.Is(err, ErrNoToken) {
		return NoTokenMessage
	}
	if len(keys) == 0 {
		keys = DefaultMessageKeys
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		var body map[string]any
		if json.Unmarshal(httpErr.Body, &body) == nil {
			for _, key := range keys {
				if text, ok := body[key].(string); ok && strings.TrimSpace(text) != "" {
					return text
				}
			}
		}
	}
	if text := err.Error(); text != "" {
		return text
	}
	return fallback
}

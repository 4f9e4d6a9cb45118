// Package apiclient is the UltraCare REST client. Every call is a single attempt
// bounded only by the caller's context.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ultracare-admin/internal/observability/metrics"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://ultracare-backend-jxny.onrender.com/api"

// DefaultAlertsPath is the alerts listing endpoint.
const DefaultAlertsPath = "/admin/alerts"

// Tokens supplies the bearer credential. Login and Signup write to it.
type Tokens interface {
	Get() string
	Set(token string)
}

type noTokens struct{}

func (noTokens) Get() string { return "" }
func (noTokens) Set(string)  {}

// Client talks to one configured base URL.
type Client struct {
	baseURL    string
	apiKey     string
	alertsPath string
	tokens     Tokens
	client     *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithAlertsPath overrides the alerts listing path.
func WithAlertsPath(path string) Option {
	return func(c *Client) {
		if path = strings.TrimSpace(path); path != "" {
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			c.alertsPath = path
		}
	}
}

// WithTokens sets the token source used by every call.
func WithTokens(tokens Tokens) Option {
	return func(c *Client) {
		if tokens != nil {
			c.tokens = tokens
		}
	}
}

// NewClient constructs a client. An empty base URL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("apiclient: invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		alertsPath: DefaultAlertsPath,
		tokens:     noTokens{},
		client:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasAPIKey reports whether a static API key is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// AlertsPath reports the configured alerts listing path.
func (c *Client) AlertsPath() string {
	return c.alertsPath
}

// WithTokens returns a copy of the client bound to another token source. The
// transport is shared.
func (c *Client) WithTokens(tokens Tokens) *Client {
	clone := *c
	if tokens == nil {
		tokens = noTokens{}
	}
	clone.tokens = tokens
	return &clone
}

// Do issues one request and returns the raw response body.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, "custom", method, path, body)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := c.send(ctx, method, path, body)
	metrics.ObserveUpstream(endpoint, resultLabel(err), time.Since(start))
	return raw, err
}

func (c *Client) send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.tokens.Get())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: payload}
	}
	return json.RawMessage(payload), nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case IsUnauthorized(err):
		return metrics.ResultUnauthorized
	case errors.Is(err, context.Canceled):
		return metrics.ResultCancelled
	default:
		return metrics.ResultError
	}
}

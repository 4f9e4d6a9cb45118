package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct{ token string }

func (m *memTokens) Get() string      { return m.token }
func (m *memTokens) Set(token string) { m.token = token }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL+"/api/", "key-123", opts...)
	require.NoError(t, err)
	return client
}

func TestDoAttachesHeaders(t *testing.T) {
	var got http.Header
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"users": []}`))
	}, WithTokens(&memTokens{token: "tok"}))

	raw, err := client.AdminUsers(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"users": []}`, string(raw))
	assert.Equal(t, "/api/admin/users", path)
	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Equal(t, "key-123", got.Get("x-api-key"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

type recordingTransport struct {
	next    http.RoundTripper
	headers []http.Header
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.headers = append(rt.headers, req.Header.Clone())
	return rt.next.RoundTrip(req)
}

func TestDoSendsEmptyBearerWithoutToken(t *testing.T) {
	transport := &recordingTransport{next: http.DefaultTransport}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, WithHTTPClient(&http.Client{Transport: transport}))

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Len(t, transport.headers, 1)
	assert.Equal(t, "Bearer ", transport.headers[0].Get("Authorization"))
}

func TestDoReturnsHTTPErrorWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "database unavailable"}`))
	})

	_, err := client.AdminDevices(context.Background())
	require.Error(t, err)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "database unavailable", ErrorMessage(err, "Failed to load devices"))
	assert.EqualValues(t, 1, calls.Load())
}

func TestUnauthorizedIsDistinguished(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := client.AdminStats(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestContextBoundsTheRequest(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Alerts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMutationsSendBodies(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(payload, &body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: body})
		_, _ = w.Write([]byte(`{"ok": true}`))
	})
	ctx := context.Background()

	_, err := client.SetUserDisabled(ctx, "u 1", true)
	require.NoError(t, err)
	_, err = client.SetHouseholdAdminDisabled(ctx, "h1", false)
	require.NoError(t, err)
	_, err = client.UpdateUserSubscription(ctx, "u2", "PRO", "ACTIVE")
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, call{http.MethodPatch, "/api/admin/users/u 1/status", map[string]any{"isDisabled": true}}, calls[0])
	assert.Equal(t, call{http.MethodPatch, "/api/household-admins/h1/status", map[string]any{"isDisabled": false}}, calls[1])
	assert.Equal(t, call{http.MethodPatch, "/api/admin/users/u2/subscription", map[string]any{"plan": "PRO", "status": "ACTIVE"}}, calls[2])
}

func TestLoginStoresToken(t *testing.T) {
	tokens := &memTokens{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"accessToken": "abc"}}`))
	}, WithTokens(tokens))

	_, err := client.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", tokens.token)
}

func TestLoginWithoutToken(t *testing.T) {
	tokens := &memTokens{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	}, WithTokens(tokens))

	_, err := client.Login(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Equal(t, "no token returned from /api/auth/login", err.Error())
	assert.Equal(t, "No token returned from /api/auth/login", ErrorMessage(err, "Login failed"))
	assert.Empty(t, tokens.token)
}

func TestSignupTokenOptional(t *testing.T) {
	tokens := &memTokens{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user": {"token": "sig"}}`))
	}, WithTokens(tokens))

	_, stored, err := client.Signup(context.Background(), SignupRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, "sig", tokens.token)
}

func TestWithTokensDoesNotShareState(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	})
	first := client.WithTokens(&memTokens{token: "one"})
	second := client.WithTokens(&memTokens{token: "two"})

	_, err := first.Health(context.Background())
	require.NoError(t, err)
	_, err = second.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer one", "Bearer two"}, seen)
}

func TestAlertsPathOption(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}, WithAlertsPath("app/alerts"))

	_, err := client.Alerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/app/alerts", path)
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultAlertsPath, client.AlertsPath())
	assert.False(t, client.HasAPIKey())

	_, err = NewClient("ftp://example.com", "")
	assert.Error(t, err)
}

func TestErrorMessageFallbacks(t *testing.T) {
	assert.Equal(t, "fallback", ErrorMessage(nil, "fallback"))

	withError := &HTTPError{Status: 400, Body: []byte(`{"error": "bad plan", "message": "ignored"}`)}
	assert.Equal(t, "bad plan", ErrorMessage(withError, "fallback"))
	assert.Equal(t, "ignored", ErrorMessage(withError, "fallback", "message"))

	blank := &HTTPError{Status: 502, Body: []byte(`not json`)}
	assert.Equal(t, "request failed with status code 502", ErrorMessage(blank, "fallback"))
}

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ultracare-admin/internal/config"
	"ultracare-admin/internal/dashboard/views"
)

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:        ":0",
		DisplayTimezone: "UTC",
		API: config.APIConfig{
			BaseURL:    "http://backend.invalid/api",
			APIKey:     "key",
			AlertsPath: "/admin/alerts",
		},
		Session: config.SessionConfig{Secret: "0123456789abcdef0123456789abcdef"},
	}
}

func TestNewServerServesDashboard(t *testing.T) {
	previous := views.Location
	t.Cleanup(func() { views.Location = previous })

	server, err := newServer(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":0", server.Addr)
	assert.Equal(t, 10*time.Second, server.ReadHeaderTimeout)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestNewServerRejectsUnknownTimezone(t *testing.T) {
	previous := views.Location
	t.Cleanup(func() { views.Location = previous })

	cfg := testConfig()
	cfg.DisplayTimezone = "Mars/Olympus_Mons"
	_, err := newServer(cfg, zerolog.Nop())
	assert.Error(t, err)
}

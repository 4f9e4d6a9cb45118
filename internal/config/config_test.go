package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ULTRACARE_CONFIG", "HTTP_ADDR", "DISPLAY_TIMEZONE",
	"ULTRACARE_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL",
	"ULTRACARE_API_KEY", "NEXT_PUBLIC_API_KEY", "ULTRACARE_ALERTS_PATH",
	"SESSION_SECRET", "SESSION_SECURE", "LOG_LEVEL", "LOG_OUTPUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://ultracare-backend-jxny.onrender.com/api", cfg.API.BaseURL)
	assert.Equal(t, "/admin/alerts", cfg.API.AlertsPath)
	assert.Empty(t, cfg.API.APIKey)
	assert.True(t, cfg.GeneratedSessionSecret)
	assert.Len(t, cfg.Session.Secret, 32)
	assert.Equal(t, "UTC", cfg.DisplayTimezone)
}

func TestLoadLegacyEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_API_BASE_URL", "http://legacy.local/api")
	t.Setenv("NEXT_PUBLIC_API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://legacy.local/api", cfg.API.BaseURL)
	assert.Equal(t, "legacy-key", cfg.API.APIKey)

	t.Setenv("ULTRACARE_API_BASE_URL", "http://primary.local/api")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://primary.local/api", cfg.API.BaseURL)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
display_timezone: Africa/Lagos
api:
  base_url: http://yaml.local/api
  api_key: yaml-key
  alerts_path: /app/alerts
session:
  secret: yaml-secret
  secure: true
log:
  level: debug
`), 0o600))
	t.Setenv("ULTRACARE_CONFIG", path)
	t.Setenv("ULTRACARE_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "Africa/Lagos", cfg.DisplayTimezone)
	assert.Equal(t, "http://yaml.local/api", cfg.API.BaseURL)
	assert.Equal(t, "env-key", cfg.API.APIKey)
	assert.Equal(t, "/app/alerts", cfg.API.AlertsPath)
	assert.Equal(t, "yaml-secret", cfg.Session.Secret)
	assert.True(t, cfg.Session.Secure)
	assert.False(t, cfg.GeneratedSessionSecret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("ULTRACARE_ALERTS_PATH=/alerts\n"), 0o600))
	os.Unsetenv("ULTRACARE_ALERTS_PATH")
	t.Cleanup(func() { os.Unsetenv("ULTRACARE_ALERTS_PATH") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/alerts", cfg.API.AlertsPath)
}

func TestLoadMissingYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("ULTRACARE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

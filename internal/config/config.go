// Package config loads dashboard settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ultracare-admin/internal/logging"
)

const (
	defaultHTTPAddr   = ":8080"
	defaultBaseURL    = "https://ultracare-backend-jxny.onrender.com/api"
	defaultAlertsPath = "/admin/alerts"
	defaultTimezone   = "UTC"
)

// APIConfig locates the UltraCare backend.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	AlertsPath string `yaml:"alerts_path"`
}

// SessionConfig controls the browser session cookie.
type SessionConfig struct {
	Secret string `yaml:"secret"`
	Secure bool   `yaml:"secure"`
}

// Config is the full dashboard configuration.
type Config struct {
	HTTPAddr        string         `yaml:"http_addr"`
	DisplayTimezone string         `yaml:"display_timezone"`
	API             APIConfig      `yaml:"api"`
	Session         SessionConfig  `yaml:"session"`
	Log             logging.Config `yaml:"log"`

	// GeneratedSessionSecret is set when no secret was configured and a random
	// one was generated. Sessions then do not survive a restart.
	GeneratedSessionSecret bool `yaml:"-"`
}

// Load reads .env when present, then ULTRACARE_CONFIG, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Config{
		HTTPAddr:        defaultHTTPAddr,
		DisplayTimezone: defaultTimezone,
		API: APIConfig{
			BaseURL:    defaultBaseURL,
			AlertsPath: defaultAlertsPath,
		},
		Log: logging.Config{Level: "info", Output: "stdout"},
	}

	if path := os.Getenv("ULTRACARE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DisplayTimezone = getenvDefault("DISPLAY_TIMEZONE", cfg.DisplayTimezone)
	cfg.API.BaseURL = getenvDefault("ULTRACARE_API_BASE_URL", getenvDefault("NEXT_PUBLIC_API_BASE_URL", cfg.API.BaseURL))
	cfg.API.APIKey = getenvDefault("ULTRACARE_API_KEY", getenvDefault("NEXT_PUBLIC_API_KEY", cfg.API.APIKey))
	cfg.API.AlertsPath = getenvDefault("ULTRACARE_ALERTS_PATH", cfg.API.AlertsPath)
	cfg.Session.Secret = getenvDefault("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.Secure = getenvBoolDefault("SESSION_SECURE", cfg.Session.Secure)
	cfg.Log.Level = getenvDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Output = getenvDefault("LOG_OUTPUT", cfg.Log.Output)

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.AlertsPath == "" {
		cfg.API.AlertsPath = defaultAlertsPath
	}
	if cfg.HTTPAddr == "" {
		return cfg, errors.New("config: http addr required")
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = string(securecookie.GenerateRandomKey(32))
		cfg.GeneratedSessionSecret = true
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBoolDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Package logging builds the zerolog loggers used across the dashboard.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger zerolog.Logger

// Config selects level and sink.
type Config struct {
	Level      string `yaml:"level"`
	Output     string `yaml:"output"`
	TimeFormat string `yaml:"time_format"`
}

func init() {
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// Init replaces the global logger. An unknown level is an error.
func Init(cfg Config) error {
	logger, err := New(cfg, nil)
	if err != nil {
		return err
	}
	globalLogger = logger
	log.Logger = globalLogger
	return nil
}

// New builds a logger without touching the global one. A nil writer selects the
// configured output.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stdout
		if strings.EqualFold(cfg.Output, "stderr") {
			w = os.Stderr
		}
	}
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}
	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return globalLogger
}

// WithComponent tags the global logger with a component name.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

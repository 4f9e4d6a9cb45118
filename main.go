package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ultracare-admin/internal/apiclient"
	"ultracare-admin/internal/auth"
	"ultracare-admin/internal/config"
	"ultracare-admin/internal/dashboard/application"
	dashboardhttp "ultracare-admin/internal/dashboard/interfaces/http"
	"ultracare-admin/internal/dashboard/views"
	"ultracare-admin/internal/logging"
	"ultracare-admin/internal/observability/metrics"
)

const shutdownGrace = 10 * time.Second

func main() {
	boot := logging.Logger()
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config load error")
	}
	if err := logging.Init(cfg.Log); err != nil {
		boot.Fatal().Err(err).Msg("logger init error")
	}
	logger := logging.WithComponent("main")

	metrics.Init()

	server, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("server setup error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.API.BaseURL).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}

// newServer wires the API client, session store and dashboard handler for cfg.
func newServer(cfg config.Config, logger zerolog.Logger) (*http.Server, error) {
	location, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, err
	}
	views.Location = location

	client, err := apiclient.NewClient(cfg.API.BaseURL, cfg.API.APIKey, apiclient.WithAlertsPath(cfg.API.AlertsPath))
	if err != nil {
		return nil, err
	}
	if !client.HasAPIKey() {
		logger.Warn().Msg("no API key configured; requests are sent with an empty x-api-key")
	}

	if cfg.GeneratedSessionSecret {
		logger.Warn().Msg("SESSION_SECRET not set; using a random secret, sessions end on restart")
	}
	sessions := auth.NewSessionStore([]byte(cfg.Session.Secret), cfg.Session.Secure)

	conn := application.Connection{
		BaseURL:    client.BaseURL(),
		HasAPIKey:  client.HasAPIKey(),
		AlertsPath: client.AlertsPath(),
		Timezone:   location.String(),
	}
	handler, err := dashboardhttp.NewHandler(client, sessions, conn, logging.WithComponent("http"))
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ytresearch/config"
	"ytresearch/export"
	"ytresearch/internal/httpclient"
	"ytresearch/internal/logging"
	"ytresearch/research"
	"ytresearch/settings"
	"ytresearch/web"
	"ytresearch/youtube"
)

func main() {
	var settingsPath string
	flag.StringVar(&settingsPath, "settings", "", "path of the credentials file (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("load config")
	}
	if settingsPath != "" {
		cfg.SettingsPath = settingsPath
	}

	logging.Init(cfg.LogLevel, "ytresearch")

	store := settings.NewStore(cfg.SettingsPath)

	exporter := export.NewClient(httpclient.New(&httpclient.Config{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: "ytresearch/1.0",
		Transport: httpclient.DefaultTransportConfig(),
	}))

	newAPI := func(ctx context.Context, apiKey string) (research.VideoAPI, error) {
		return youtube.NewClient(ctx, apiKey, cfg.APIRequestsPerSecond, cfg.QuotaReserve)
	}

	server := web.NewServer(cfg, store, exporter, newAPI)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logging.Logger.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-done
	logging.Logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}
	logging.Logger.Info().Msg("server stopped")
}

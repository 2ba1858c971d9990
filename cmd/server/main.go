package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/alliance-dashboard/internal/api"
	"github.com/dom/alliance-dashboard/internal/config"
	"github.com/dom/alliance-dashboard/internal/repository"
	"github.com/dom/alliance-dashboard/internal/repository/static"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/service"
	"github.com/dom/alliance-dashboard/internal/snapshot"
	"github.com/dom/alliance-dashboard/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	source, err := newSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure data source")
	}

	// Snapshot store, shared by the hub and the services
	store := snapshot.NewStore()

	// Initialize WebSocket hub
	hub := websocket.NewHub(store)
	go hub.Run()

	loader := snapshot.NewLoader(source, cfg.Files, resolver.Options{Fuzzy: cfg.Rules.FuzzyMatching})
	refresher := snapshot.NewRefresher(store, loader, hub)

	// Initialize services
	services := service.NewServices(refresher, cfg)

	if cfg.RefreshOnStart {
		ctx, cancel := context.Background(), context.CancelFunc(func() {})
		if cfg.FetchTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, 2*cfg.FetchTimeout)
		}
		if _, err := refresher.Refresh(ctx); err != nil {
			// The server still starts; POST /api/v1/refresh retries.
			log.Error().Err(err).Msg("initial load failed")
		}
		cancel()
	}

	// Initialize router
	router := api.NewRouter(services, hub)

	srv := &http.Server{
		Addr:        "0.0.0.0:" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

func newSource(cfg *config.Config) (repository.Source, error) {
	if cfg.DataDir != "" {
		log.Info().Str("dir", cfg.DataDir).Msg("Serving data from directory")
		return static.NewFileSource(cfg.DataDir), nil
	}
	log.Info().Str("url", cfg.DataBaseURL).Msg("Serving data from static site")
	return static.NewHTTPSource(cfg.DataBaseURL, cfg.FetchTimeout)
}

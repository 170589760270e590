package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"podcasts/internal/admin"
	"podcasts/internal/config"
	"podcasts/internal/db"
	"podcasts/internal/handlers"
	"podcasts/pkg/logger"
	"podcasts/web"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	version, dirty, err := db.RunMigrations()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema is up to date")

	templates, err := web.ParseTemplates(cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	var site *admin.Site
	if cfg.AdminEnabled() {
		site, err = admin.NewSite(templates, cfg.Location, admin.EpisodeAdmin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to register admin")
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD_HASH is not set, admin site disabled")
	}

	h := handlers.New(templates, cfg.SiteTitle, cfg.BaseURL)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, h, site, log.Logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("commit", CommitSHA).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Stringer("signal", sig).Msg("Shutting down")
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
}

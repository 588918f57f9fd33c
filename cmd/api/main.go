package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"lawfirm/internal/config"
	"lawfirm/internal/database"
	"lawfirm/internal/server"
	"lawfirm/internal/services"
	"lawfirm/pkg/logger"
)

const (
	shutdownTimeout   = 30 * time.Second
	readTimeout       = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	poolStatsInterval = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server shutdown complete")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Bool("debug", cfg.App.Debug).
		Str("host", cfg.App.Host).
		Str("port", cfg.App.Port).
		Msg("starting")

	if err := database.Init(cfg.Database, logger.Component(log, "db")); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		log.Info().Msg("closing database connections")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()
	db := database.GetDB()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go database.WatchPoolStats(ctx, db, poolStatsInterval)

	email := services.NewEmailService(cfg.Email, log)
	handler := server.New(cfg, server.Services{
		Health:        services.NewHealthService(db, cfg.App.Name, cfg.App.Version),
		PracticeAreas: services.NewPracticeAreaService(db, log),
		Lawyers:       services.NewLawyerService(db, log),
		CaseResults:   services.NewCaseResultService(db, log),
		Testimonials:  services.NewTestimonialService(db, log),
		Contact:       services.NewContactService(db, email, log),
	}, log)

	addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Bool("email_notifications", email.IsEnabled()).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, starting graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during graceful shutdown")
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Msg("shutdown timeout exceeded, forcing close")
			_ = httpServer.Close()
		}
	}
	return nil
}

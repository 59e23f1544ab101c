// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/venue-booking/internal/config"
	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/Shivanand-hulikatti/venue-booking/internal/handler"
	"github.com/Shivanand-hulikatti/venue-booking/internal/ledger"
	"github.com/Shivanand-hulikatti/venue-booking/internal/repository"
	"github.com/Shivanand-hulikatti/venue-booking/internal/service"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "venue-booking:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		addr        string
		migrateOnly bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default $"+config.ConfigEnvVar+")")
	pflag.StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	pflag.BoolVar(&migrateOnly, "migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	// ── 1. Configuration and logging ──────────────────────────────────────
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 2. Connect to PostgreSQL and migrate ──────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to PostgreSQL")

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if migrateOnly {
		logger.Info("migrations applied, exiting")
		return nil
	}

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	capacity := ledger.New(bookingRepo, logger)

	h := handler.New(handler.Services{
		Events:     service.NewEventService(eventRepo, capacity),
		Bookings:   service.NewBookingService(capacity, bookingRepo),
		Venues:     service.NewVenueService(venueRepo),
		Categories: service.NewCategoryService(settingsRepo),
		DB:         pool,
	}, logger)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

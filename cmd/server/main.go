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
	"time"

	"github.com/connectomedia/contact-api/internal/api"
	"github.com/connectomedia/contact-api/internal/config"
	"github.com/connectomedia/contact-api/internal/database"
	"github.com/connectomedia/contact-api/internal/logger"
	"gorm.io/gorm"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg, err := config.LoadWithValidation()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logger
	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)
	cfg.LogConfig(log)

	log.Info("Starting Connectomedia API Server...")

	db, dialect, err := database.Connect(cfg.DatabaseOptions())
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := prepareDatabase(db, dialect, cfg.RequireDatabase, log); err != nil {
		return err
	}

	proxies, err := cfg.ProxyRanges()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Dialect:        dialect,
		Logger:         log,
		AdminAPIKey:    cfg.AdminAPIKey,
		AllowedOrigins: cfg.Origins(),
		Production:     cfg.IsProduction(),
		RateLimit:      cfg.RateLimitRequests,
		RateBurst:      cfg.RateLimitBurst,
		TrustedProxies: proxies,
		Version:        cfg.Version,
		Context:        ctx,
	})
	if cfg.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY not set - message listing is UNSECURED")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", slog.String("addr", addr), slog.String("database", dialect.DisplayName()))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// prepareDatabase checks connectivity and creates the schema. With
// requireDatabase unset, failures are logged and the server starts degraded.
func prepareDatabase(db *gorm.DB, dialect database.Dialect, requireDatabase bool, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	err := database.Ping(ctx, db)
	if err == nil {
		log.Info("database connected", slog.String("driver", dialect.Name()))
		err = database.InitSchema(ctx, db, dialect)
	}
	if err == nil {
		return nil
	}

	if requireDatabase {
		return err
	}
	log.Error("database unavailable, starting in degraded mode", slog.Any("error", err))
	return nil
}

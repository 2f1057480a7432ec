// Command dbcheck verifies the configured database end to end: it connects,
// creates the schema, then inserts, reads back and deletes a probe row.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/connectomedia/contact-api/internal/config"
	"github.com/connectomedia/contact-api/internal/database"
	"github.com/connectomedia/contact-api/internal/logger"
	"github.com/connectomedia/contact-api/internal/models"
	"github.com/connectomedia/contact-api/internal/repository"
)

const checkTimeout = 30 * time.Second

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if err := check(ctx, cfg, log); err != nil {
		log.Error("database check failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("database check passed")
}

func check(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, dialect, err := database.Connect(cfg.DatabaseOptions())
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Ping(ctx, db); err != nil {
		return err
	}
	log.Info("connected", slog.String("database", dialect.DisplayName()))

	if err := database.InitSchema(ctx, db, dialect); err != nil {
		return err
	}

	repo := repository.NewContactRepository(db)
	company := "Connectomedia"
	probe := &models.ContactMessage{
		Name:    "Connection Test",
		Email:   "test@example.com",
		Company: &company,
		Message: "This is a test message from dbcheck.",
	}
	if err := repo.Create(ctx, probe); err != nil {
		return err
	}
	log.Info("test row inserted", slog.Uint64("id", uint64(probe.ID)))

	stored, err := repo.GetByID(ctx, probe.ID)
	if err != nil {
		return fmt.Errorf("failed to read back test row: %w", err)
	}
	log.Info("test row read back",
		slog.String("name", stored.Name),
		slog.String("company", stored.CompanyOrEmpty()),
		slog.Time("created_at", stored.CreatedAt),
	)

	if err := repo.Delete(ctx, probe.ID); err != nil {
		return fmt.Errorf("failed to delete test row: %w", err)
	}
	log.Info("test row deleted")
	return nil
}

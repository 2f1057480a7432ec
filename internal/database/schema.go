package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// InitSchema ensures the contact_messages table and its indexes exist.
// Every statement is CREATE ... IF NOT EXISTS, so repeated runs are no-ops.
// The first failing statement aborts initialization; nothing is retried.
func InitSchema(ctx context.Context, db *gorm.DB, dialect Dialect) error {
	slog.Info("initializing database schema", slog.String("driver", dialect.Name()))

	for i, stmt := range dialect.SchemaStatements() {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to initialize schema (statement %d): %w", i+1, err)
		}
	}

	slog.Info("database schema initialized")
	return nil
}

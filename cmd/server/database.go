package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashloop/internal/config"
	"github.com/phrazzld/flashloop/internal/platform/postgres"
)

// errNoDatabase is returned when a database operation is requested with
// the file corpus backend.
var errNoDatabase = errors.New("corpus backend is not postgres")

// setupAppDatabase opens and pings the corpus database.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Corpus.Backend != config.BackendPostgres {
		return nil, errNoDatabase
	}

	db, err := postgres.Open(ctx, cfg.Corpus.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to corpus database: %w", err)
	}
	logger.Info("database connection established")
	return db, nil
}

// handleMigrations runs one goose command against the corpus database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("cannot run migrations: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("error closing database connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return err
	}
	logger.Info("migration command completed", slog.String("command", command))
	return nil
}

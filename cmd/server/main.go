// Package main runs the flashloop HTTP server, which drives spaced-exposure
// training sessions over a JSON API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/flashloop/internal/config"
	"github.com/phrazzld/flashloop/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateCmd); err != nil {
		log.Printf("flashloop: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, then either applies a migration command or
// serves until ctx is cancelled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("corpus_backend", cfg.Corpus.Backend),
		slog.Bool("speech", cfg.Speech.Enabled))

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

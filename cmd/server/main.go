// Package main implements the entry point for the Hellenika API server,
// which serves an Ancient Greek vocabulary catalog and the study,
// progress, and session-history endpoints built on top of it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/hellenika/hellenika-api/internal/config"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/platform/postgres/migrations"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, wires the application together, and either
// executes a migration command or starts the HTTP server.
func run(migrateCmd string) error {
	// Optional .env file for local development. Missing is fine; real
	// deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				appLogger.Error("Error closing database connection", slog.String("error", err.Error()))
			}
		}()
		switch migrateCmd {
		case "up":
			return migrations.Up(ctx, db)
		case "status":
			return migrations.Status(ctx, db)
		default:
			return fmt.Errorf("unknown migration command: %q", migrateCmd)
		}
	}

	// The schema is applied on startup so a fresh database is usable
	// without a separate migration step.
	if err := migrations.Up(ctx, db); err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

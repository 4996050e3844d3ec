// Package migrations embeds the goose SQL migrations and applies them
// against a live database connection.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// slogGooseLogger adapts goose's logger interface to slog so migration
// output lands in the same structured stream as the rest of the server.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// Up applies all pending migrations from the embedded filesystem.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(fs)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Status logs the applied/pending state of every known migration.
func Status(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(fs)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to report migration status: %w", err)
	}
	return nil
}

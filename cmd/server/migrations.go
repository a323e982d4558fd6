package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/dnwandana/todo-api/migrations"
)

// runMigrations applies any pending schema migrations from the embedded
// migration files before the server starts accepting traffic.
func runMigrations(db *sql.DB, logr *slog.Logger) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logr.Info("database migrations applied", "version", version)
	return nil
}

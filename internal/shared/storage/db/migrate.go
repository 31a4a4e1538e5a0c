package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func prepareGoose() error {
	goose.SetBaseFS(migrationFiles)
	return goose.SetDialect("postgres")
}

// RunMigrations applies embedded SQL migrations via goose. A nil database is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}

// Migrate runs a goose command ("up", "down", "status", "version") against
// the embedded migrations.
func Migrate(ctx context.Context, database *sql.DB, command string) error {
	if database == nil {
		return fmt.Errorf("migrate %s: no database", command)
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	switch command {
	case "", "up":
		return goose.UpContext(ctx, database, "migrations")
	case "down":
		return goose.DownContext(ctx, database, "migrations")
	case "status":
		return goose.StatusContext(ctx, database, "migrations")
	case "version":
		return goose.VersionContext(ctx, database, "migrations")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}

package main

// Run database migrations:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate status
//   go run ./cmd/migrate --command down

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	command := flags.StringP("command", "c", "up", "goose command: up, down, status or version")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if rest := flags.Args(); len(rest) > 0 {
		*command = rest[0]
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, *command); err != nil {
		return err
	}
	telemetry.Info("migrate.done", map[string]any{"command": *command})
	return nil
}

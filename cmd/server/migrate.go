package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/platform/gormstore"
	"github.com/phrazzld/generic-crud/internal/platform/postgres"
	"github.com/spf13/cobra"
)

const defaultMigrateCommand = "up"

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [command]",
		Short: "Apply or inspect database migrations",
		Long: `Runs a migration command against the configured database.

PostgreSQL supports: ` + strings.Join(postgres.MigrationCommands, ", ") + `.
MySQL supports only "up", which creates or updates tables from the models.

The command defaults to "up".`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := defaultMigrateCommand
			if len(args) == 1 {
				command = args[0]
			}
			if !slices.Contains(postgres.MigrationCommands, command) {
				return fmt.Errorf("unknown migration command %q", command)
			}

			cfg, logger, err := initializeApp()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg.Database, command, logger)
		},
	}
}

// runMigrations executes command with the migration tool of the configured
// driver.
func runMigrations(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger) error {
	switch cfg.Driver {
	case driverPostgres:
		db, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, command, logger)

	case driverMySQL:
		if command != defaultMigrateCommand {
			return fmt.Errorf("migration command %q is not supported by the mysql driver", command)
		}
		db, err := gormstore.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer func() { _ = sqlDB.Close() }()
		}
		if err := gormstore.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("schema migrated", slog.String("driver", driverMySQL))
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

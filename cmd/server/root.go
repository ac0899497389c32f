package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "crud",
		Short: "Generic CRUD API server",
		Long: `Serves list, get, create, update and delete endpoints for items and
categories over JSON, backed by PostgreSQL or MySQL.

Server settings come from config.yaml and CRUD_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil || path == "" {
				return err
			}
			return os.Setenv(config.ConfigFileEnv, path)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default ./config.yaml or $"+config.ConfigFileEnv+")")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newItemsCommand())
	root.AddCommand(newCategoriesCommand())

	return root
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	return cfg, log, nil
}

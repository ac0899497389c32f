package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := initializeApp()
			if err != nil {
				return err
			}

			repos, err := openRepositories(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			app, err := newApplication(cfg, logger, repos)
			if err != nil {
				_ = repos.close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.cleanup()

			return app.Run(cmd.Context())
		},
	}
}

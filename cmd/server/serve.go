package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flexboard/internal/app"
	"flexboard/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		application, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return application.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

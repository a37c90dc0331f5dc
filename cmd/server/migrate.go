package main

import (
	"github.com/spf13/cobra"

	"flexboard/internal/config"
	"flexboard/internal/database"
)

var migrateDatabaseURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.MigrateUp(resolveDatabaseURL())
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.MigrateDown(resolveDatabaseURL(), migrateDownSteps)
	},
}

func resolveDatabaseURL() string {
	if migrateDatabaseURL != "" {
		return migrateDatabaseURL
	}
	return config.DatabaseURL()
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateCmd.PersistentFlags().StringVar(&migrateDatabaseURL, "database-url", "", "database URL (defaults to DATABASE_URL)")
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
}

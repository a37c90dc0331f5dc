package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flexboard/internal/app"
	"flexboard/internal/config"
	"flexboard/internal/model"
)

var superuser model.RegisterRequest

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create an active superuser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		user, err := app.CreateSuperuser(cmd.Context(), cfg, superuser)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created superuser %s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(createSuperuserCmd)

	flags := createSuperuserCmd.Flags()
	flags.StringVar(&superuser.Username, "username", "", "username")
	flags.StringVar(&superuser.Email, "email", "", "email address")
	flags.StringVar(&superuser.Password, "password", "", "password")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}

// cmd/api/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "user-service/internal"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users table if it does not exist",
	Long:  `Connect to the database from DB_URL, create the users table if it is missing and exit. Existing tables are not altered.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		application := app.NewApplication()
		defer application.Shutdown(cmd.Context()) //nolint: errcheck

		if err := application.Connect(cmd.Context()); err != nil {
			return fmt.Errorf("failed to prepare database: %w", err)
		}

		fmt.Println("Database schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

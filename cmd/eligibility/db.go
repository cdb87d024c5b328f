package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iskolar-ocr/internal/db"
)

// createDBCmd creates the database maintenance commands
func createDBCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Check-log database maintenance",
	}

	dbCmd.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cmd.Context(), db.SettingsFromEnv())
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Database connection successful!")
			var count int
			err = conn.DB.QueryRowContext(cmd.Context(), "SELECT COUNT(*) FROM eligibility_check").Scan(&count)
			if err != nil {
				logger.Warn("cannot count checks; run `eligibility db migrate`", "error", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded checks: %d\n", count)
			return nil
		},
	})

	dbCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the check-log tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cmd.Context(), db.SettingsFromEnv())
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := conn.Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	})

	return dbCmd
}

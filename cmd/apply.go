/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usersdb/seeder/config"
	"github.com/usersdb/seeder/internal/db"
	"github.com/usersdb/seeder/internal/schema"
	"github.com/usersdb/seeder/internal/seed"
)

// applyCmd represents the apply command.
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the users table and insert the seed rows",
	Long: `Create the users table if it does not exist and insert the seed
accounts. Rows that are already present are left alone, so the command
can run against the same database any number of times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		dialect, err := schema.ParseDialect(cfg.Driver)
		if err != nil {
			return err
		}

		conn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer func() {
			_ = conn.Close()
		}()

		res, err := seed.New(conn, dialect).Apply(cmd.Context())
		if err != nil {
			return fmt.Errorf("apply failed: %w", err)
		}
		fmt.Printf("ok: %d statements, %d rows inserted\n", res.Statements, res.RowsInserted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usersdb/seeder/config"
	"github.com/usersdb/seeder/internal/db"
	"github.com/usersdb/seeder/internal/schema"
	"github.com/usersdb/seeder/internal/seed"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the users table and seed rows are in place",
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

		st, err := seed.New(conn, dialect).Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("status failed: %w", err)
		}

		if !st.TableExists {
			fmt.Println("users table: missing")
			return nil
		}
		fmt.Printf("users table: present, %d rows\n", st.UserCount)
		if st.Seeded() {
			fmt.Println("seed rows: all present")
		} else {
			fmt.Printf("seed rows missing: %s\n", strings.Join(st.Missing, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usersdb/seeder/config"
	"github.com/usersdb/seeder/internal/schema"
)

var scriptDialect string

// scriptCmd represents the script command.
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the SQL script without connecting to a database",
	Long: `Print the full schema and seed script for a dialect on stdout,
for feeding to psql, sqlite3 or any other client by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := scriptDialect
		if name == "" {
			name = config.LoadConfig().Driver
		}
		dialect, err := schema.ParseDialect(name)
		if err != nil {
			return err
		}

		script, err := dialect.Script()
		if err != nil {
			return err
		}
		fmt.Print(script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().StringVar(&scriptDialect, "dialect", "", "dialect to print, postgres or sqlite3 (defaults to DB_DRIVER)")
}

// Package main provides the ebookstore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VictoriaairotciV/ebookstore/internal/config"
	"github.com/VictoriaairotciV/ebookstore/internal/prompt"
	"github.com/VictoriaairotciV/ebookstore/internal/shell"
	"github.com/VictoriaairotciV/ebookstore/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// dbFlag overrides the database path.
var dbFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ebookstore",
	Short: "Interactive bookstore inventory manager",
	Long: `ebookstore manages a small bookstore inventory from the terminal.

It keeps book records in a local SQLite database and offers a numbered
menu for adding, updating, deleting, and searching books. On the first
run the database is created and seeded with a starter inventory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&dbFlag, "db", "", "path to the inventory database (default \"ebookstore.db\")")
	rootCmd.Version = Version
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Resolve(dbFlag)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("opening inventory database: %w", err)
	}
	defer store.Close()

	logger.Info().Str("db", settings.DBPath).Msg("store opened")

	reader, closeReader := prompt.New(settings.HistoryPath)
	defer closeReader()

	return shell.New(store, reader, os.Stdout, logger).Run()
}

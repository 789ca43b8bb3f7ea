package main

import (
	"github.com/spf13/cobra"
	"github.com/vytor/leitnerbox/internal/config"
	"github.com/vytor/leitnerbox/internal/logger"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "leitnerbox",
		Short:         "Leitner-box flashcard trainer",
		Long:          "leitnerbox schedules flashcards across five Leitner boxes and serves quiz sessions over a JSON API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if p, _ := cmd.Flags().GetString("db"); p != "" {
				loaded.DBPath = p
			}
			if l, _ := cmd.Flags().GetString("log-level"); l != "" {
				loaded.LogLevel = l
			}
			if err := loaded.Validate(); err != nil {
				return err
			}

			logger.SetDefault(logger.New(
				logger.WithLevel(logger.ParseLevel(loaded.LogLevel)),
				logger.WithOutput(cmd.ErrOrStderr()),
			))
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	root.PersistentFlags().String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")

	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newImportCmd(&cfg))
	root.AddCommand(newStatsCmd(&cfg))
	return root
}

// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookrec/internal/config"
	"github.com/tomtom215/bookrec/internal/logging"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookrec",
		Short: "Book recommendation engine over the Book-Crossing data set",
		Long: `bookrec loads the Books, Ratings and Users CSV files, builds an
immutable recommendation engine and serves it over HTTP or answers a
single query from the command line.

Configuration comes from built-in defaults, an optional YAML file and
environment variables, in increasing priority.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file (default: search CONFIG_PATH and ./config.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookrec %s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newSimilarCmd())
	rootCmd.AddCommand(newAuthorCmd())

	return rootCmd
}

// loadConfig loads the configuration named by --config and configures the
// global logger from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return cfg, nil
}

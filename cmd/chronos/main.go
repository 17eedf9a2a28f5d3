// Package main provides the chronos CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/chronos/internal/config"
	"github.com/matsen/chronos/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "Connect historical medical records with modern research",
	Long: `chronos links historical medical observations with modern studies.

Core features:
  - PubMed literature search and ingestion
  - Text extraction from scanned source documents
  - AI-generated hypotheses connecting old observations with new findings
  - Relationship graphs rendered as SVG or interactive HTML

Records are stored in a local SQLite database.
All commands output JSON by default for AI agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(cfg *config.GlobalConfig) *storage.DB {
	if cfg.DBPath == "" {
		exitWithError(ExitConfigError, "no database path configured\n\n%s", config.HelpfulConfigMessage())
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		exitWithError(ExitError, "creating database directory: %v", err)
	}
	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

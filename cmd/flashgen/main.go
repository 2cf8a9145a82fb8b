// Package main implements the flashgen command: it serves the flashcard
// page and JSON API, or generates a flashcard set for a topic directly from
// the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-flashgen/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd creates the base command with all subcommands attached.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flashgen",
		Short: "Generate study flashcards with a language model",
		Long: `flashgen asks a language model for a set of study flashcards on a topic,
validates the reply against the flashcard schema and shows the result.

Run "flashgen serve" for the web page and JSON API, or "flashgen generate"
to print a set in the terminal. Settings come from config.yaml, a .env file
and SCRY_* environment variables (for example SCRY_LLM_API_KEY).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml when present)")
	rootCmd.PersistentFlags().String("env-file", ".env", "file with environment variables to load")
	rootCmd.PersistentFlags().String("log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd(), newGenerateCmd(), newVersionCmd())
	return rootCmd
}

// loadConfig loads configuration using the persistent flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.Option
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Server.LogLevel = level
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-flashgen/internal/app"
	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the flashcard page and JSON API",
		Long: `serve starts an HTTP server with the interactive flashcard page at "/",
the JSON endpoint at "/api/flashcards" and a liveness check at "/health".
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				cfg.Server.Port = port
				if err := config.Validate(cfg); err != nil {
					return err
				}
			}

			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			log.Info("Server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"provider", cfg.LLM.Provider)

			application, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return application.Serve(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	return cmd
}

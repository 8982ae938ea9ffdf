package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dunemcp/src/config"
	"dunemcp/src/logger"
	"dunemcp/src/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Starts the MCP server over stdin/stdout. The server consumes build
events from the configured broker, accumulates them into sessions, and
answers dune_build_status and get_diagnostic_details tool calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		// Stdout carries MCP framing; logs go to stderr.
		log := logger.NewConsoleLogger()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		srv, cleanup, err := mcp.NewServerFromConfig(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := srv.Run(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// Package main provides the standalone MCP server entry point for dunemcp.
// This is the binary MCP client configurations point at; it is equivalent to
// `dunemcp serve`.
package main

import (
	"context"
	"log"

	"dunemcp/src/config"
	"dunemcp/src/logger"
	"dunemcp/src/mcp"
)

func main() {
	cfg := config.MustLoadFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, cleanup, err := mcp.NewServerFromConfig(ctx, cfg, logger.NewConsoleLogger())
	if err != nil {
		log.Fatalf("MCP server setup failed: %v", err)
	}
	defer cleanup()

	// Run server over stdin/stdout (stdio transport)
	if err := srv.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}

// Package main provides the main entry point for the dunemcp CLI.
// This orchestrates the serve, query, and view subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dunemcp",
	Short: "dunemcp - token-bounded dune build diagnostics for LLM clients",
	Long: `dunemcp reports dune/OCaml build diagnostics over the Model Context
Protocol with a hard token budget: responses are filtered, error-first
ordered, paginated, and never exceed the configured token ceiling.

Deployment is auto-detected from the environment:
- In-process mode: in-memory broker and store (default)
- Distributed mode: Redpanda + Postgres, set via DUNEMCP_BROKERS and
  DUNEMCP_POSTGRES_DSN.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"dunemcp/src/config"
	"dunemcp/src/provider"
	"dunemcp/src/request"
	"dunemcp/src/respond"
	"dunemcp/src/tokens"
)

var (
	querySnapshot string
	querySeverity string
	queryPattern  string
	queryMax      int
	queryPage     int
	queryTargets  []string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one diagnostic query against a snapshot file",
	Long: `Loads a build report snapshot (JSON) and runs the same
filter/prioritize/truncate pipeline the MCP server uses, printing the
bounded response. Useful for inspecting truncation behavior offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		// Build the wire request from flags so validation is exercised the
		// same way it is for tool calls.
		wire := map[string]any{
			"max_diagnostics": queryMax,
			"page":            queryPage,
			"severity_filter": querySeverity,
		}
		if queryPattern != "" {
			wire["file_pattern"] = queryPattern
		}
		if len(queryTargets) > 0 {
			wire["targets"] = queryTargets
		}

		query, err := request.ValidateArguments(wire)
		if err != nil {
			return err
		}

		snap, err := provider.LoadSnapshot(querySnapshot)
		if err != nil {
			return err
		}
		report, err := snap.Report(cmd.Context(), query.Targets)
		if err != nil {
			return provider.WrapError(err)
		}

		response := respond.Assemble(tokens.NewEstimator(), report.Status, report.Summary, report.Diagnostics, query, cfg.Budget())

		out, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&querySnapshot, "snapshot", "", "path to a build report snapshot (JSON)")
	queryCmd.Flags().StringVar(&querySeverity, "severity", "all", "severity filter: error, warning, or all")
	queryCmd.Flags().StringVar(&queryPattern, "file-pattern", "", "glob filter on file paths")
	queryCmd.Flags().IntVar(&queryMax, "max-diagnostics", request.DefaultMaxDiagnostics, "page size")
	queryCmd.Flags().IntVar(&queryPage, "page", 0, "zero-based page index")
	queryCmd.Flags().StringSliceVar(&queryTargets, "target", nil, "build target selection")
	queryCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(queryCmd)
}

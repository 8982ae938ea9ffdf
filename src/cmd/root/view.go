package main

import (
	"github.com/spf13/cobra"

	"dunemcp/src/provider"
	"dunemcp/src/tui"
)

var viewSnapshot string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse a snapshot's diagnostics in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := provider.LoadSnapshot(viewSnapshot)
		if err != nil {
			return err
		}
		report, err := snap.Report(cmd.Context(), nil)
		if err != nil {
			return provider.WrapError(err)
		}
		return tui.Run(report)
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewSnapshot, "snapshot", "", "path to a build report snapshot (JSON)")
	viewCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(viewCmd)
}

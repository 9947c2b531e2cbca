package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/panpantou/stash/internal/tui"
)

func trendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Explore the net-worth trend interactively",
		Long: `Open an interactive chart of per-category balances over time. Move
the date cursor with the arrow keys to inspect the nearest snapshot;
press t to toggle the Overall Total line.`,
		RunE: runTrend,
	}
}

func runTrend(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	chart := tui.New(store.Sorted(), newFormatter(), viper.GetBool("chart.show_total"))

	program := tea.NewProgram(chart, tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run trend chart: %w", err)
	}
	surfaceStoreError(cmd, store)

	return nil
}

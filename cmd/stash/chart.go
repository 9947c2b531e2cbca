package main

import (
	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/aggregate"
	"github.com/panpantou/stash/internal/cli"
)

func chartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show monthly totals per category",
		Long: `Show a table of summed balances per month and category, including a
synthetic Overall Total per month. Months are keyed YYYY-MM so they sort
chronologically.`,
		RunE: runChart,
	}
}

func runChart(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	formatter := newFormatter()
	totals := aggregate.MonthlyCategoryTotals(store.Snapshots())

	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		value := formatter.Format(total.Total)
		if total.Month == aggregate.NoDataLabel {
			value = "-"
		}
		rows = append(rows, []string{total.Month, total.Category, value})
	}

	cmd.Println(cli.FormatTitle("Monthly totals"))
	cmd.Println(cli.RenderTable([]string{"Month", "Category", "Total"}, rows))
	surfaceStoreError(cmd, store)

	return nil
}

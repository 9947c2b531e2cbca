package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/cli"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded snapshots in date order",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	formatter := newFormatter()
	snapshots := store.Sorted()

	cmd.Println(cli.FormatTitle("Snapshots"))
	if len(snapshots) == 0 {
		cmd.Println(cli.SubtleStyle.Render("No snapshots recorded yet. Add one with: stash add"))
		surfaceStoreError(cmd, store)
		return nil
	}

	for _, snapshot := range snapshots {
		cmd.Printf("%s  %s  %s\n",
			snapshot.Date.Format(dateLayout),
			formatter.Format(snapshot.Total()),
			cli.SubtleStyle.Render(snapshot.ID))
		if len(snapshot.Accounts) == 0 {
			cmd.Println(cli.SubtleStyle.Render("    no accounts recorded for this snapshot"))
			continue
		}
		for _, account := range snapshot.Accounts {
			cmd.Printf("    %s · %s · %s\n",
				account.Institution, account.Category, formatter.Format(account.Amount))
		}
	}
	cmd.Println(fmt.Sprintf("%d snapshot(s)", len(snapshots)))
	surfaceStoreError(cmd, store)

	return nil
}

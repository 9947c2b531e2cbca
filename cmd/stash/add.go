package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new snapshot of your account balances",
		Long: `Record one dated snapshot of every balance you want to track.

Each --account flag adds one balance in the form Institution:Amount:Category,
for example:

  stash add --date 2024-03-01 \
    --account "Barclays:1200.50:Savings" \
    --account "Vanguard:8000:Stocks & Shares"`,
		RunE: runAdd,
	}

	cmd.Flags().StringP("date", "d", time.Now().Format(dateLayout), "snapshot date (format: 2006-01-02)")
	cmd.Flags().StringArrayP("account", "a", nil, "account balance as Institution:Amount:Category (repeatable)")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	dateStr, _ := cmd.Flags().GetString("date")
	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	specs, _ := cmd.Flags().GetStringArray("account")
	accounts, err := parseAccountSpecs(specs)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		cmd.Println(cli.FormatWarning("recording a snapshot with no accounts"))
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	snapshot := model.NewSnapshot(date, accounts)
	if err := store.Add(snapshot); err != nil {
		_ = store.Close()
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Recorded snapshot %s for %s, total %s",
		snapshot.ID, date.Format(dateLayout), newFormatter().Format(snapshot.Total()))))
	surfaceStoreError(cmd, store)

	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/model"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <snapshot-id>",
		Short: "Replace a snapshot's date and accounts",
		Long: `Replace an existing snapshot wholesale. The snapshot keeps its id;
the date and the full account list are replaced by what you pass here.
Omitting --date keeps the current date; omitting every --account keeps
the current accounts.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringP("date", "d", "", "new snapshot date (format: 2006-01-02)")
	cmd.Flags().StringArrayP("account", "a", nil, "replacement account as Institution:Amount:Category (repeatable)")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	existing, ok := store.Get(args[0])
	if !ok {
		_ = store.Close()
		return common.NewUserError(fmt.Sprintf("snapshot %s not found", args[0]), common.ErrNotFound)
	}

	updated := model.Snapshot{ID: existing.ID, Date: existing.Date, Accounts: existing.Accounts}

	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			_ = store.Close()
			return err
		}
		updated.Date = date
	}

	if specs, _ := cmd.Flags().GetStringArray("account"); len(specs) > 0 {
		accounts, err := parseAccountSpecs(specs)
		if err != nil {
			_ = store.Close()
			return err
		}
		updated.Accounts = accounts
	}

	store.Update(updated)
	if err := store.Close(); err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Updated snapshot %s, total %s",
		updated.ID, newFormatter().Format(updated.Total()))))
	surfaceStoreError(cmd, store)

	return nil
}

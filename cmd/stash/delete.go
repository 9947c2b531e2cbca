package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/common"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [snapshot-id...]",
		Short: "Delete snapshots by id or by list position",
		Long: `Delete snapshots by id, or by their position in the date-sorted
list with --at (0 is the earliest snapshot). Deletion is permanent and
requires --yes.`,
		RunE: runDelete,
	}

	cmd.Flags().IntSlice("at", nil, "positions in the sorted list to delete (repeatable)")
	cmd.Flags().Bool("yes", false, "confirm deletion")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	positions, _ := cmd.Flags().GetIntSlice("at")
	if len(args) == 0 && len(positions) == 0 {
		return common.NewUserError("nothing to delete, pass snapshot ids or --at positions", nil)
	}

	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		return common.NewUserError("deletion is permanent, re-run with --yes to confirm", nil)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	removed := 0
	if len(positions) > 0 {
		removed += store.DeleteAt(positions...)
	}
	if len(args) > 0 {
		removed += store.Delete(args...)
	}
	if err := store.Close(); err != nil {
		return err
	}

	if removed == 0 {
		cmd.Println(cli.FormatWarning("no snapshots matched"))
		return nil
	}
	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d snapshot(s)", removed)))
	surfaceStoreError(cmd, store)

	return nil
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/importer"
	"github.com/panpantou/stash/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import snapshots from a CSV or OFX file",
		Long: `Import account balances from a file.

CSV files need a header row and the columns date,institution,amount,category
with dates as 2006-01-02 and categories matching the exact labels
(Crypto, Savings, Stocks & Shares, Current Account). Rows sharing a date
merge into one snapshot. Malformed rows are skipped, not fatal.

OFX/QFX statement files contribute each statement's ledger balance as one
account, all merged into a single snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("format", "", "file format, csv or ofx (default: by extension)")
	cmd.Flags().Bool("dry-run", false, "parse and report without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ofx", ".qfx":
			format = "ofx"
		default:
			format = "csv"
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var snapshots []model.Snapshot
	var summary string

	switch format {
	case "csv":
		rows := dataRowCount(content)
		bar := progressbar.NewOptions(rows,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing rows..."),
		)

		parser := importer.NewCSVParser()
		parser.Progress = func() { _ = bar.Add(1) }

		result, err := parser.Parse(cmd.Context(), bytes.NewReader(content))
		if err != nil {
			return err
		}
		_ = bar.Finish()
		cmd.PrintErrln()

		snapshots = result.Snapshots
		summary = fmt.Sprintf("Snapshots: %d\nRows imported: %d\nRows skipped: %d",
			len(result.Snapshots), result.Imported, result.Skipped)

	case "ofx":
		snapshot, err := importer.NewOFXParser().Parse(cmd.Context(), bytes.NewReader(content))
		if err != nil {
			return err
		}
		snapshots = []model.Snapshot{snapshot}
		summary = fmt.Sprintf("Snapshots: 1\nBalances: %d\nAs of: %s",
			len(snapshot.Accounts), snapshot.Date.Format(dateLayout))

	default:
		return common.NewUserError(fmt.Sprintf("unknown format %q, expected csv or ofx", format), nil)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		cmd.Println(cli.RenderBox("Import (dry run)", summary))
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.AddBatch(snapshots); err != nil {
		_ = store.Close()
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}

	cmd.Println(cli.RenderBox("Import", summary))
	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Successfully imported %d snapshot(s)", len(snapshots))))
	surfaceStoreError(cmd, store)

	return nil
}

// dataRowCount counts non-empty lines after the header so the progress
// bar total matches what the parser will consume.
func dataRowCount(content []byte) int {
	rows := 0
	for i, line := range bytes.Split(content, []byte("\n")) {
		if i == 0 {
			continue
		}
		if len(bytes.TrimRight(line, "\r")) == 0 {
			continue
		}
		rows++
	}
	return rows
}

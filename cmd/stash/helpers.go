package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/currency"
	"github.com/panpantou/stash/internal/model"
	"github.com/panpantou/stash/internal/storage"
)

const dateLayout = "2006-01-02"

func openStore() (*storage.Store, error) {
	store, err := storage.NewStore(viper.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return store, nil
}

func newFormatter() *currency.Formatter {
	return currency.NewFormatter(viper.GetString("currency.symbol"))
}

// surfaceStoreError prints the store's pending error once and dismisses
// it, matching the one-shot alert behavior of the error channel.
func surfaceStoreError(cmd interface{ PrintErrln(...any) }, store *storage.Store) {
	if msg, ok := store.LastError(); ok {
		cmd.PrintErrln(cli.FormatWarning(msg))
		store.ClearError()
	}
}

// parseAccountSpecs turns repeated --account "Institution:Amount:Category"
// flags into account balances with fresh ids. The spec is split from the
// right, so institution names may themselves contain colons.
func parseAccountSpecs(specs []string) ([]model.AccountBalance, error) {
	accounts := make([]model.AccountBalance, 0, len(specs))
	for _, spec := range specs {
		last := strings.LastIndex(spec, ":")
		mid := -1
		if last > 0 {
			mid = strings.LastIndex(spec[:last], ":")
		}
		if mid < 0 {
			return nil, common.NewUserError(
				fmt.Sprintf("invalid account %q, expected Institution:Amount:Category", spec), nil)
		}
		institution := strings.TrimSpace(spec[:mid])
		if institution == "" {
			return nil, common.NewUserError(fmt.Sprintf("invalid account %q, institution is empty", spec), nil)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(spec[mid+1:last]), 64)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("invalid amount in %q", spec), err)
		}
		category, ok := model.ParseCategory(strings.TrimSpace(spec[last+1:]))
		if !ok {
			return nil, common.NewUserError(
				fmt.Sprintf("unknown category in %q, expected one of: %s", spec, categoryLabels()),
				common.ErrInvalidCategory)
		}
		accounts = append(accounts, model.NewAccountBalance(institution, amount, category))
	}
	return accounts, nil
}

func categoryLabels() string {
	labels := make([]string, 0, 4)
	for _, c := range model.Categories() {
		labels = append(labels, string(c))
	}
	return strings.Join(labels, ", ")
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid date %q, expected %s", value, dateLayout), err)
	}
	return date, nil
}

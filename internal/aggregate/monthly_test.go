package aggregate

import (
	"testing"
	"time"

	"github.com/panpantou/stash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOn(date time.Time, accounts ...model.AccountBalance) model.Snapshot {
	return model.Snapshot{ID: date.Format("20060102") + "-snap", Date: date, Accounts: accounts}
}

func account(institution string, amount float64, category model.AccountCategory) model.AccountBalance {
	return model.AccountBalance{ID: institution + "-id", Institution: institution, Amount: amount, Category: category}
}

func TestMonthlyCategoryTotalsEmptyCollection(t *testing.T) {
	got := MonthlyCategoryTotals(nil)

	require.Len(t, got, 1)
	assert.Equal(t, MonthlyCategoryTotal{Month: NoDataLabel, Category: NoDataLabel, Total: 0}, got[0])
}

func TestMonthlyCategoryTotalsGroupsAndSorts(t *testing.T) {
	jan1 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	jan2 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	got := MonthlyCategoryTotals([]model.Snapshot{
		snapshotOn(feb, account("Chase", 30, model.CategorySavings)),
		snapshotOn(jan1, account("Barclays", 100, model.CategorySavings)),
		snapshotOn(jan2, account("HSBC", 50, model.CategorySavings)),
	})

	want := []MonthlyCategoryTotal{
		{Month: "2024-01", Category: OverallTotalCategory, Total: 150},
		{Month: "2024-01", Category: "Savings", Total: 150},
		{Month: "2024-02", Category: OverallTotalCategory, Total: 30},
		{Month: "2024-02", Category: "Savings", Total: 30},
	}
	assert.Equal(t, want, got)
}

func TestMonthlyCategoryTotalsMultipleCategories(t *testing.T) {
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := MonthlyCategoryTotals([]model.Snapshot{
		snapshotOn(mar,
			account("Coinbase", 10, model.CategoryCrypto),
			account("Vanguard", 200, model.CategoryStocks),
			account("Monzo", -5, model.CategoryCurrent),
		),
	})

	// Sorted by category name within the month.
	want := []MonthlyCategoryTotal{
		{Month: "2024-03", Category: "Crypto", Total: 10},
		{Month: "2024-03", Category: "Current Account", Total: -5},
		{Month: "2024-03", Category: OverallTotalCategory, Total: 205},
		{Month: "2024-03", Category: "Stocks & Shares", Total: 200},
	}
	assert.Equal(t, want, got)
}

func TestMonthlyCategoryTotalsDoesNotMutateInput(t *testing.T) {
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)

	input := []model.Snapshot{
		snapshotOn(jan, account("Barclays", 100, model.CategorySavings)),
		snapshotOn(dec, account("HSBC", 50, model.CategorySavings)),
	}

	_ = MonthlyCategoryTotals(input)

	assert.Equal(t, jan, input[0].Date)
	assert.Equal(t, dec, input[1].Date)
}

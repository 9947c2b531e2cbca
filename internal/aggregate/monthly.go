// Package aggregate derives chart series from the snapshot collection.
// Everything here is a pure function over its input; nothing mutates the
// collection.
package aggregate

import (
	"sort"

	"github.com/panpantou/stash/internal/model"
)

// OverallTotalCategory is the synthetic pseudo-category summing every
// account regardless of category.
const OverallTotalCategory = "Overall Total"

// NoDataLabel marks the sentinel entry returned for an empty collection.
const NoDataLabel = "No Data"

// MonthlyCategoryTotal is one (month, category, total) triple for the
// monthly chart.
type MonthlyCategoryTotal struct {
	Month    string // YYYY-MM, lexicographic order is chronological
	Category string
	Total    float64
}

// MonthlyCategoryTotals groups all accounts of all snapshots by month
// and category and sums their amounts. Each month also gets an
// "Overall Total" entry. Output is sorted by month key ascending, then
// category name ascending. An empty collection yields exactly one
// "No Data" sentinel entry.
func MonthlyCategoryTotals(snapshots []model.Snapshot) []MonthlyCategoryTotal {
	if len(snapshots) == 0 {
		return []MonthlyCategoryTotal{{Month: NoDataLabel, Category: NoDataLabel, Total: 0}}
	}

	byMonth := make(map[string][]model.AccountBalance)
	for _, snapshot := range model.SortByDate(snapshots) {
		key := snapshot.Date.Format("2006-01")
		byMonth[key] = append(byMonth[key], snapshot.Accounts...)
	}

	totals := make([]MonthlyCategoryTotal, 0, len(byMonth)*2)
	for month, accounts := range byMonth {
		byCategory := make(map[string]float64)
		overall := 0.0
		for _, account := range accounts {
			byCategory[string(account.Category)] += account.Amount
			overall += account.Amount
		}
		for category, total := range byCategory {
			totals = append(totals, MonthlyCategoryTotal{Month: month, Category: category, Total: total})
		}
		totals = append(totals, MonthlyCategoryTotal{Month: month, Category: OverallTotalCategory, Total: overall})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Month != totals[j].Month {
			return totals[i].Month < totals[j].Month
		}
		return totals[i].Category < totals[j].Category
	})

	return totals
}

package aggregate

import (
	"time"

	"github.com/panpantou/stash/internal/model"
)

// SeriesPoint is one chart point: the summed value of a category at a
// snapshot date.
type SeriesPoint struct {
	Date     time.Time
	Category string
	Value    float64
}

// SeriesOptions controls the running series derivation.
type SeriesOptions struct {
	// IncludeOverallTotal adds one "Overall Total" point per snapshot.
	IncludeOverallTotal bool
}

// RunningSeries emits per-category points for every snapshot in
// chronological order. Categories activate on first appearance and stay
// active: a later snapshot without accounts in an active category still
// emits a zero point, so a chart line never disappears once started.
// Points for each snapshot are ordered by category activation order,
// with the optional overall total last.
func RunningSeries(snapshots []model.Snapshot, opts SeriesOptions) []SeriesPoint {
	sorted := model.SortByDate(snapshots)

	var active []string
	seen := make(map[string]bool)

	var points []SeriesPoint
	for _, snapshot := range sorted {
		sums := make(map[string]float64)
		for _, account := range snapshot.Accounts {
			category := string(account.Category)
			sums[category] += account.Amount
			if !seen[category] {
				seen[category] = true
				active = append(active, category)
			}
		}

		for _, category := range active {
			points = append(points, SeriesPoint{
				Date:     snapshot.Date,
				Category: category,
				Value:    sums[category],
			})
		}
		if opts.IncludeOverallTotal {
			points = append(points, SeriesPoint{
				Date:     snapshot.Date,
				Category: OverallTotalCategory,
				Value:    snapshot.Total(),
			})
		}
	}

	return points
}

// ActiveCategories returns the categories of the running series in
// activation order.
func ActiveCategories(snapshots []model.Snapshot) []string {
	var active []string
	seen := make(map[string]bool)
	for _, snapshot := range model.SortByDate(snapshots) {
		for _, account := range snapshot.Accounts {
			category := string(account.Category)
			if !seen[category] {
				seen[category] = true
				active = append(active, category)
			}
		}
	}
	return active
}

// NearestSnapshot finds the snapshot whose date is closest to the query
// date. A query exactly between two snapshots resolves to the earlier
// one. Returns false for an empty collection.
func NearestSnapshot(snapshots []model.Snapshot, query time.Time) (model.Snapshot, bool) {
	if len(snapshots) == 0 {
		return model.Snapshot{}, false
	}

	sorted := model.SortByDate(snapshots)
	best := sorted[0]
	bestDiff := absDuration(query.Sub(best.Date))
	for _, snapshot := range sorted[1:] {
		// Strictly smaller wins, so midpoint ties keep the earlier date.
		if diff := absDuration(query.Sub(snapshot.Date)); diff < bestDiff {
			best = snapshot
			bestDiff = diff
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Package model defines the core domain types for snapshot tracking.
package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AccountCategory is the closed classification of a balance. Values are
// the literal display labels and are what lands in the JSON document.
type AccountCategory string

// Known categories.
const (
	CategoryCrypto  AccountCategory = "Crypto"
	CategorySavings AccountCategory = "Savings"
	CategoryStocks  AccountCategory = "Stocks & Shares"
	CategoryCurrent AccountCategory = "Current Account"
)

// Categories returns every known category in display order.
func Categories() []AccountCategory {
	return []AccountCategory{
		CategoryCrypto,
		CategorySavings,
		CategoryStocks,
		CategoryCurrent,
	}
}

// ParseCategory maps a literal label to its category. The match is exact:
// "savings" or "Stocks and Shares" are not recognized.
func ParseCategory(label string) (AccountCategory, bool) {
	for _, c := range Categories() {
		if string(c) == label {
			return c, true
		}
	}
	return "", false
}

// AccountBalance is one institution/category/amount record within a
// snapshot. It is owned by its parent snapshot and never shared.
type AccountBalance struct {
	ID          string          `json:"id"`
	Institution string          `json:"institution"`
	Amount      float64         `json:"amount"`
	Category    AccountCategory `json:"category"`
}

// NewAccountBalance mints an account balance with a fresh id.
func NewAccountBalance(institution string, amount float64, category AccountCategory) AccountBalance {
	return AccountBalance{
		ID:          uuid.NewString(),
		Institution: institution,
		Amount:      amount,
		Category:    category,
	}
}

// Snapshot is one dated observation of all tracked account balances.
// The total is always derived from the accounts; it is deliberately not
// a field so it can never drift from its constituents.
type Snapshot struct {
	ID       string           `json:"id"`
	Date     time.Time        `json:"date"`
	Accounts []AccountBalance `json:"accounts"`
}

// NewSnapshot mints a snapshot with a fresh id.
func NewSnapshot(date time.Time, accounts []AccountBalance) Snapshot {
	return Snapshot{
		ID:       uuid.NewString(),
		Date:     date,
		Accounts: accounts,
	}
}

// Total sums the amounts of all accounts in the snapshot.
func (s Snapshot) Total() float64 {
	total := 0.0
	for _, a := range s.Accounts {
		total += a.Amount
	}
	return total
}

// SortByDate returns a copy of snapshots in display order: date
// ascending, ties broken by id so the order is deterministic.
func SortByDate(snapshots []Snapshot) []Snapshot {
	sorted := make([]Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

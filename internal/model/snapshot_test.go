package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotTotal(t *testing.T) {
	tests := []struct {
		name     string
		accounts []AccountBalance
		want     float64
	}{
		{
			name: "sums all accounts",
			accounts: []AccountBalance{
				{Institution: "Monzo", Amount: 100.50, Category: CategoryCurrent},
				{Institution: "Vanguard", Amount: 2000, Category: CategoryStocks},
				{Institution: "Coinbase", Amount: -49.50, Category: CategoryCrypto},
			},
			want: 2051,
		},
		{
			name:     "no accounts",
			accounts: nil,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnapshot(time.Now(), tt.accounts)
			assert.InDelta(t, tt.want, s.Total(), 0.001)
		})
	}
}

func TestTotalIsNeverSerialized(t *testing.T) {
	s := NewSnapshot(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), []AccountBalance{
		NewAccountBalance("Barclays", 42, CategorySavings),
	})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "total")

	var roundTripped Snapshot
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, s, roundTripped)
	assert.InDelta(t, 42, roundTripped.Total(), 0.001)
}

func TestNewSnapshotMintsFreshIDs(t *testing.T) {
	a := NewSnapshot(time.Now(), nil)
	b := NewSnapshot(time.Now(), nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		label string
		want  AccountCategory
		ok    bool
	}{
		{"Crypto", CategoryCrypto, true},
		{"Savings", CategorySavings, true},
		{"Stocks & Shares", CategoryStocks, true},
		{"Current Account", CategoryCurrent, true},
		{"savings", "", false},
		{"Stocks and Shares", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseCategory(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortByDate(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	s1 := Snapshot{ID: "b", Date: feb}
	s2 := Snapshot{ID: "a", Date: jan}
	s3 := Snapshot{ID: "c", Date: jan}

	input := []Snapshot{s1, s2, s3}
	sorted := SortByDate(input)

	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"a", "c", "b"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	// Input order untouched.
	assert.Equal(t, "b", input[0].ID)
}

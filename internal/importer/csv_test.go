package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/panpantou/stash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsMalformedRows(t *testing.T) {
	csv := strings.Join([]string{
		"date,institution,amount,category",
		"2024-01-01,Bank,100.50,Savings",
		"bad,row",
	}, "\n")

	result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Snapshots, 1)
	require.Len(t, result.Snapshots[0].Accounts, 1)

	got := result.Snapshots[0].Accounts[0]
	assert.Equal(t, "Bank", got.Institution)
	assert.InDelta(t, 100.50, got.Amount, 0.001)
	assert.Equal(t, model.CategorySavings, got.Category)
}

func TestParseMergesRowsByDate(t *testing.T) {
	csv := strings.Join([]string{
		"date,institution,amount,category",
		"2024-01-01,Barclays,100,Savings",
		"2024-01-01,Coinbase,20,Crypto",
		"2024-02-15,Vanguard,500,Stocks & Shares",
	}, "\n")

	result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Snapshots, 2)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	jan := result.Snapshots[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), jan.Date)
	require.Len(t, jan.Accounts, 2)
	assert.InDelta(t, 120, jan.Total(), 0.001)

	feb := result.Snapshots[1]
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), feb.Date)
	require.Len(t, feb.Accounts, 1)
}

func TestParseRowValidation(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"wrong field count", "2024-01-01,Bank,100"},
		{"bad date", "01/01/2024,Bank,100,Savings"},
		{"bad amount", "2024-01-01,Bank,lots,Savings"},
		{"unknown category", "2024-01-01,Bank,100,Stocks"},
		{"case-sensitive category", "2024-01-01,Bank,100,savings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "date,institution,amount,category\n" + tt.row

			result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
			require.NoError(t, err)
			assert.Equal(t, 0, result.Imported)
			assert.Equal(t, 1, result.Skipped)
			assert.Empty(t, result.Snapshots)
		})
	}
}

func TestParseHeaderAlwaysDiscarded(t *testing.T) {
	// Even a parseable first line is treated as a header.
	csv := "2024-01-01,Bank,100,Savings\n2024-01-02,Bank,200,Savings"

	result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Snapshots, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), result.Snapshots[0].Date)
}

func TestParseMintsFreshIDs(t *testing.T) {
	csv := "date,institution,amount,category\n2024-01-01,Bank,100,Savings"

	first, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	second, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.NotEqual(t, first.Snapshots[0].ID, second.Snapshots[0].ID)
	assert.NotEqual(t, first.Snapshots[0].Accounts[0].ID, second.Snapshots[0].Accounts[0].ID)
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	csv := "date,institution,amount,category\r\n2024-01-01,Bank,100,Savings\r\n\r\n"

	result, err := NewCSVParser().Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
}

func TestParseReportsProgress(t *testing.T) {
	csv := strings.Join([]string{
		"date,institution,amount,category",
		"2024-01-01,Bank,100,Savings",
		"bad,row",
		"2024-01-02,Bank,200,Savings",
	}, "\n")

	parser := NewCSVParser()
	rows := 0
	parser.Progress = func() { rows++ }

	_, err := parser.Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
}

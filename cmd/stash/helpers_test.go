package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panpantou/stash/internal/model"
)

func TestParseAccountSpecs(t *testing.T) {
	tests := []struct {
		name            string
		spec            string
		wantInstitution string
		wantAmount      float64
		wantCategory    model.AccountCategory
	}{
		{
			name:            "plain",
			spec:            "Barclays:1200.50:Savings",
			wantInstitution: "Barclays",
			wantAmount:      1200.50,
			wantCategory:    model.CategorySavings,
		},
		{
			name:            "institution containing a colon",
			spec:            "Bank: Main:100:Current Account",
			wantInstitution: "Bank: Main",
			wantAmount:      100,
			wantCategory:    model.CategoryCurrent,
		},
		{
			name:            "negative amount",
			spec:            "Monzo:-42.50:Current Account",
			wantInstitution: "Monzo",
			wantAmount:      -42.50,
			wantCategory:    model.CategoryCurrent,
		},
		{
			name:            "padded fields",
			spec:            "Vanguard : 8000 : Stocks & Shares",
			wantInstitution: "Vanguard",
			wantAmount:      8000,
			wantCategory:    model.CategoryStocks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts, err := parseAccountSpecs([]string{tt.spec})
			require.NoError(t, err)
			require.Len(t, accounts, 1)

			got := accounts[0]
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.wantInstitution, got.Institution)
			assert.InDelta(t, tt.wantAmount, got.Amount, 0.001)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestParseAccountSpecsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"too few fields", "Barclays:100"},
		{"no separators", "Barclays"},
		{"empty institution", ":100:Savings"},
		{"bad amount", "Barclays:lots:Savings"},
		{"unknown category", "Barclays:100:Stocks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAccountSpecs([]string{tt.spec})
			assert.Error(t, err)
		})
	}
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panpantou/stash/internal/currency"
	"github.com/panpantou/stash/internal/model"
)

func trendSnapshots() []model.Snapshot {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []model.Snapshot{
		{ID: "s1", Date: t1, Accounts: []model.AccountBalance{
			{ID: "a1", Institution: "Barclays", Amount: 100, Category: model.CategorySavings},
		}},
		{ID: "s2", Date: t2, Accounts: []model.AccountBalance{
			{ID: "a2", Institution: "Coinbase", Amount: 20, Category: model.CategoryCrypto},
		}},
	}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewStartsAtLastSnapshot(t *testing.T) {
	m := New(trendSnapshots(), currency.NewFormatter("£"), false)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), m.Cursor())
}

func TestCursorMovesAndClamps(t *testing.T) {
	m := New(trendSnapshots(), currency.NewFormatter("£"), false)

	next, _ := m.Update(keyMsg(tea.KeyLeft))
	m = next.(Model)
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), m.Cursor())

	// Right twice from the last date stays clamped at the last date.
	next, _ = m.Update(keyMsg(tea.KeyRight))
	m = next.(Model)
	next, _ = m.Update(keyMsg(tea.KeyRight))
	m = next.(Model)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), m.Cursor())

	next, _ = m.Update(keyMsg(tea.KeyHome))
	m = next.(Model)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Cursor())

	next, _ = m.Update(keyMsg(tea.KeyLeft))
	m = next.(Model)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Cursor())
}

func TestToggleOverallTotal(t *testing.T) {
	m := New(trendSnapshots(), currency.NewFormatter("£"), false)
	require.Len(t, m.lines, 2)

	next, _ := m.Update(runeMsg('t'))
	m = next.(Model)
	require.Len(t, m.lines, 3)

	next, _ = m.Update(runeMsg('t'))
	m = next.(Model)
	require.Len(t, m.lines, 2)
}

func TestViewShowsNearestSnapshotDetail(t *testing.T) {
	m := New(trendSnapshots(), currency.NewFormatter("£"), true)

	view := m.View()
	assert.Contains(t, view, "Savings")
	assert.Contains(t, view, "Crypto")
	assert.Contains(t, view, "2024-01-10")
	assert.Contains(t, view, "Coinbase")
}

func TestQuit(t *testing.T) {
	m := New(trendSnapshots(), currency.NewFormatter("£"), false)

	next, cmd := m.Update(runeMsg('q'))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestEmptyCollectionView(t *testing.T) {
	m := New(nil, currency.NewFormatter("£"), false)

	view := m.View()
	assert.Contains(t, view, "No snapshots yet")

	// Cursor movement on an empty chart must not panic.
	next, _ := m.Update(keyMsg(tea.KeyRight))
	m = next.(Model)
	assert.True(t, m.Cursor().IsZero())
}

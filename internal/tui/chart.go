// Package tui renders the interactive trend chart. Moving the date
// cursor is the terminal stand-in for pointer/drag interaction: the
// footer always shows the snapshot nearest to the cursor date.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/panpantou/stash/internal/aggregate"
	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/currency"
	"github.com/panpantou/stash/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// series is one chart line: a category and its value at every snapshot
// from activation onward.
type series struct {
	category string
	// start is the index of the first snapshot where the category was
	// active; values[i] belongs to snapshot start+i.
	start  int
	values []float64
}

// Model is the bubbletea model for the trend chart.
type Model struct {
	snapshots []model.Snapshot // date ascending
	lines     []series
	cursor    time.Time
	showTotal bool
	formatter *currency.Formatter
	keys      KeyMap
	help      help.Model
	width     int
	quitting  bool
}

// New creates the trend chart over the given collection.
func New(snapshots []model.Snapshot, formatter *currency.Formatter, showTotal bool) Model {
	m := Model{
		snapshots: model.SortByDate(snapshots),
		showTotal: showTotal,
		formatter: formatter,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	if len(m.snapshots) > 0 {
		m.cursor = m.snapshots[len(m.snapshots)-1].Date
	}
	m.rebuildSeries()
	return m
}

// Cursor returns the current query date.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// rebuildSeries derives the chart lines from the running series.
func (m *Model) rebuildSeries() {
	points := aggregate.RunningSeries(m.snapshots, aggregate.SeriesOptions{
		IncludeOverallTotal: m.showTotal,
	})

	index := make(map[string]int)
	m.lines = nil
	// RunningSeries emits one point per active category per snapshot, so
	// a category's points line up with consecutive snapshot positions
	// ending at the last snapshot.
	for _, point := range points {
		if _, ok := index[point.Category]; !ok {
			index[point.Category] = len(m.lines)
			m.lines = append(m.lines, series{category: point.Category})
		}
		i := index[point.Category]
		m.lines[i].values = append(m.lines[i].values, point.Value)
	}
	for i := range m.lines {
		m.lines[i].start = len(m.snapshots) - len(m.lines[i].values)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Home):
			if len(m.snapshots) > 0 {
				m.cursor = m.snapshots[0].Date
			}
		case key.Matches(msg, m.keys.End):
			if len(m.snapshots) > 0 {
				m.cursor = m.snapshots[len(m.snapshots)-1].Date
			}
		case key.Matches(msg, m.keys.ToggleTotal):
			m.showTotal = !m.showTotal
			m.rebuildSeries()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

// moveCursor shifts the query date one day, clamped to the snapshot
// date range.
func (m *Model) moveCursor(days int) {
	if len(m.snapshots) == 0 {
		return
	}
	moved := m.cursor.AddDate(0, 0, days)
	first := m.snapshots[0].Date
	last := m.snapshots[len(m.snapshots)-1].Date
	if moved.Before(first) {
		moved = first
	}
	if moved.After(last) {
		moved = last
	}
	m.cursor = moved
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.snapshots) == 0 {
		return cli.FormatTitle("Net worth trend") + "\n\n" +
			cli.SubtleStyle.Render("No snapshots yet. Add one with: stash add") + "\n"
	}

	nearest, _ := aggregate.NearestSnapshot(m.snapshots, m.cursor)
	highlight := m.snapshotIndex(nearest.ID)

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Net worth trend"))
	b.WriteString("\n\n")
	b.WriteString(m.renderLines(highlight))
	b.WriteString("\n")
	b.WriteString(m.renderDetail(nearest))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) snapshotIndex(id string) int {
	for i, snapshot := range m.snapshots {
		if snapshot.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) renderLines(highlight int) string {
	low, high := m.valueRange()

	labelWidth := 0
	for _, line := range m.lines {
		if w := lipgloss.Width(line.category); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for _, line := range m.lines {
		label := line.category + strings.Repeat(" ", labelWidth-lipgloss.Width(line.category))
		b.WriteString(cli.SubtleStyle.Render(label))
		b.WriteString("  ")
		for pos := 0; pos < len(m.snapshots); pos++ {
			if pos < line.start {
				b.WriteString(" ")
				continue
			}
			cell := string(sparkRune(line.values[pos-line.start], low, high))
			if pos == highlight {
				cell = cli.TitleStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) valueRange() (low, high float64) {
	first := true
	for _, line := range m.lines {
		for _, v := range line.values {
			if first || v < low {
				low = v
			}
			if first || v > high {
				high = v
			}
			first = false
		}
	}
	return low, high
}

func sparkRune(value, low, high float64) rune {
	if high <= low {
		return sparkRunes[len(sparkRunes)/2]
	}
	level := int((value - low) / (high - low) * float64(len(sparkRunes)-1))
	if level < 0 {
		level = 0
	}
	if level >= len(sparkRunes) {
		level = len(sparkRunes) - 1
	}
	return sparkRunes[level]
}

func (m Model) renderDetail(nearest model.Snapshot) string {
	lines := []string{
		fmt.Sprintf("Cursor: %s", m.cursor.Format("2006-01-02")),
		fmt.Sprintf("Nearest snapshot: %s (total %s)",
			nearest.Date.Format("2006-01-02"),
			m.formatter.Format(nearest.Total())),
	}
	for _, account := range nearest.Accounts {
		lines = append(lines, fmt.Sprintf("  %s · %s · %s",
			account.Institution, account.Category, m.formatter.Format(account.Amount)))
	}
	return cli.RenderBox("Snapshot", strings.Join(lines, "\n"))
}

// Package importer parses external files into snapshot records.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/panpantou/stash/internal/model"
)

// csvDateLayout is the expected date format of the first CSV column.
const csvDateLayout = "2006-01-02"

// Result is the outcome of a CSV import.
type Result struct {
	// Snapshots are the newly minted snapshots, date ascending.
	Snapshots []model.Snapshot
	// Imported counts rows that produced an account balance.
	Imported int
	// Skipped counts rows dropped for field count, date, amount, or
	// category problems.
	Skipped int
}

// CSVParser parses comma-separated balance rows into snapshots.
//
// Expected columns: date (2006-01-02), institution, amount, category.
// The first line is always treated as a header and discarded. Rows that
// don't parse are skipped, never fatal. All rows sharing a date merge
// into a single snapshot for that date.
type CSVParser struct {
	// Progress, if set, is invoked once per data row as it is consumed.
	Progress func()
}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV text and returns the snapshots it describes.
func (p *CSVParser) Parse(ctx context.Context, reader io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(reader)

	byDate := make(map[string][]model.AccountBalance)
	result := &Result{}
	header := true

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		if p.Progress != nil {
			p.Progress()
		}

		account, dateKey, ok := parseRow(line)
		if !ok {
			result.Skipped++
			continue
		}
		byDate[dateKey] = append(byDate[dateKey], account)
		result.Imported++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	for dateKey, accounts := range byDate {
		date, err := time.Parse(csvDateLayout, dateKey)
		if err != nil {
			// Keys come from successful parses; this cannot happen.
			continue
		}
		result.Snapshots = append(result.Snapshots, model.NewSnapshot(date, accounts))
	}
	result.Snapshots = model.SortByDate(result.Snapshots)

	slog.Debug("parsed CSV",
		"snapshots", len(result.Snapshots),
		"imported_rows", result.Imported,
		"skipped_rows", result.Skipped)

	return result, nil
}

// parseRow validates one data row. A row is usable only if it has
// exactly four fields and the date, amount, and category all parse.
func parseRow(line string) (model.AccountBalance, string, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return model.AccountBalance{}, "", false
	}
	if _, err := time.Parse(csvDateLayout, fields[0]); err != nil {
		return model.AccountBalance{}, "", false
	}
	amount, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return model.AccountBalance{}, "", false
	}
	category, ok := model.ParseCategory(fields[3])
	if !ok {
		return model.AccountBalance{}, "", false
	}

	return model.NewAccountBalance(fields[1], amount, category), fields[0], true
}

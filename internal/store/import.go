package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/simonvc/ratedash/internal/fx"
)

// HistoryFile is the on-disk dump of daily rates: {"base": ..., "rates": {date: {code: rate}}}.
type HistoryFile struct {
	Base  string                        `json:"base"`
	Rates map[string]map[string]float64 `json:"rates"`
}

type ImportResult struct {
	Days       int
	Currencies int
}

func ReadHistoryFile(path string) (*HistoryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	var hf HistoryFile
	if err := json.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}
	if hf.Base == "" {
		hf.Base = fx.DefaultBase
	}
	return &hf, nil
}

// ReadNamesFile reads a {code: name} JSON object. An empty path yields no names.
func ReadNamesFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse names file: %w", err)
	}
	return names, nil
}

// Import stores every day of hf and registers each currency seen in it.
// Currencies already in the catalog keep their name.
func (s *Store) Import(ctx context.Context, hf *HistoryFile, names map[string]string) (*ImportResult, error) {
	base := hf.Base
	if base == "" {
		base = fx.DefaultBase
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	dates := make([]string, 0, len(hf.Rates))
	for date := range hf.Rates {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	seen := map[string]bool{base: true}
	for _, date := range dates {
		if _, err := time.Parse(fx.DateLayout, date); err != nil {
			return nil, fmt.Errorf("rate set date %q: %w", date, err)
		}
		daily := hf.Rates[date]
		raw, err := json.Marshal(daily)
		if err != nil {
			return nil, fmt.Errorf("encode rates for %s: %w", date, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO exchange_rates (date, base, rates) VALUES (?, ?, ?)
			 ON CONFLICT(date) DO UPDATE SET base = excluded.base, rates = excluded.rates`,
			date, base, string(raw),
		); err != nil {
			return nil, fmt.Errorf("insert rates for %s: %w", date, err)
		}
		for code := range daily {
			seen[code] = true
		}
	}

	for code := range seen {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO currencies (code, name, is_active) VALUES (?, ?, 1)`,
			code, fx.ImportName(code, names),
		); err != nil {
			return nil, fmt.Errorf("insert currency %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &ImportResult{Days: len(dates), Currencies: len(seen)}, nil
}

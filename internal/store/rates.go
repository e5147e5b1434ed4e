package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/simonvc/ratedash/internal/fx"
)

// PutRateSet stores rs, replacing any set already stored for the same day.
func (s *Store) PutRateSet(ctx context.Context, rs *fx.RateSet) error {
	if _, err := time.Parse(fx.DateLayout, rs.Date); err != nil {
		return fmt.Errorf("rate set date %q: %w", rs.Date, err)
	}
	base := rs.Base
	if base == "" {
		base = fx.DefaultBase
	}
	raw, err := json.Marshal(rs.Rates)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}

	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO exchange_rates (date, base, rates) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET base = excluded.base, rates = excluded.rates`,
		rs.Date, base, string(raw),
	)
	if err != nil {
		return fmt.Errorf("put rate set: %w", err)
	}
	return nil
}

// LatestRateSet returns the newest stored set, or fx.ErrNoRates.
func (s *Store) LatestRateSet(ctx context.Context) (*fx.RateSet, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT date, base, rates FROM exchange_rates ORDER BY date DESC LIMIT 1`)
	rs, err := scanRateSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fx.ErrNoRates
	}
	return rs, err
}

// PreviousRateSet returns the newest set dated strictly before the latest one.
func (s *Store) PreviousRateSet(ctx context.Context) (*fx.RateSet, error) {
	latest, err := s.LatestRateSet(ctx)
	if err != nil {
		return nil, err
	}
	row := s.reader.QueryRowContext(ctx,
		`SELECT date, base, rates FROM exchange_rates WHERE date < ? ORDER BY date DESC LIMIT 1`, latest.Date)
	rs, err := scanRateSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fx.ErrNoPreviousRates
	}
	return rs, err
}

// RateSetsBetween returns the sets dated within [start, end], oldest first.
func (s *Store) RateSetsBetween(ctx context.Context, start, end string) ([]fx.RateSet, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT date, base, rates FROM exchange_rates WHERE date >= ? AND date <= ? ORDER BY date`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("rate sets between: %w", err)
	}
	defer rows.Close()

	var sets []fx.RateSet
	for rows.Next() {
		rs, err := scanRateSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *rs)
	}
	return sets, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRateSet(row scanner) (*fx.RateSet, error) {
	var rs fx.RateSet
	var raw string
	if err := row.Scan(&rs.Date, &rs.Base, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan rate set: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &rs.Rates); err != nil {
		return nil, fmt.Errorf("decode rates for %s: %w", rs.Date, err)
	}
	return &rs, nil
}

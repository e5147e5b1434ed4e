package store

import (
	"context"
	"fmt"

	"github.com/simonvc/ratedash/internal/fx"
)

func (s *Store) UpsertCurrency(ctx context.Context, c fx.Currency) error {
	code := fx.NormalizeCode(c.Code)
	if !fx.ValidCode(code) {
		return fmt.Errorf("%w: %q", fx.ErrUnknownCurrency, c.Code)
	}
	name := c.Name
	if name == "" {
		name = code
	}

	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO currencies (code, name, is_active) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET name = excluded.name, is_active = excluded.is_active`,
		code, name, boolToInt(c.IsActive),
	)
	if err != nil {
		return fmt.Errorf("upsert currency: %w", err)
	}
	return nil
}

// ListCurrencies returns the catalog ordered by code.
func (s *Store) ListCurrencies(ctx context.Context, activeOnly bool) ([]fx.Currency, error) {
	query := `SELECT code, name, is_active FROM currencies`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY code`

	rows, err := s.reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []fx.Currency
	for rows.Next() {
		var c fx.Currency
		var active int
		if err := rows.Scan(&c.Code, &c.Name, &active); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		c.IsActive = active == 1
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

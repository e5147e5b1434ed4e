package tui

import (
	"context"
	"log/slog"

	"github.com/simonvc/ratedash/internal/fx"
)

// API is the subset of the rates client the dashboard needs.
type API interface {
	FetchCurrencies(ctx context.Context) ([]string, error)
	FetchCurrencyCodesNames(ctx context.Context) (map[string]string, error)
	LatestRates(ctx context.Context, base string) (*fx.RateSet, error)
	PreviousRates(ctx context.Context, base string) (*fx.RateSet, error)
	Convert(ctx context.Context, amount, from, to string) (*fx.Conversion, error)
	Historical(ctx context.Context, from, to string, period fx.Period) (*fx.Series, error)
}

// backend is what every view fetches through. Failed fetches are logged here
// and otherwise ignored by the views.
type backend struct {
	api API
	log *slog.Logger
}

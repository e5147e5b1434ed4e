package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonvc/ratedash/internal/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_MigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.reader.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestCurrencies(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertCurrency(ctx, fx.Currency{Code: "usd", Name: "US Dollar", IsActive: true}))
	require.NoError(t, s.UpsertCurrency(ctx, fx.Currency{Code: "EUR", Name: "Euro", IsActive: true}))
	require.NoError(t, s.UpsertCurrency(ctx, fx.Currency{Code: "XAU", IsActive: false}))

	err := s.UpsertCurrency(ctx, fx.Currency{Code: "EURO"})
	assert.ErrorIs(t, err, fx.ErrUnknownCurrency)

	all, err := s.ListCurrencies(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []fx.Currency{
		{Code: "EUR", Name: "Euro", IsActive: true},
		{Code: "USD", Name: "US Dollar", IsActive: true},
		{Code: "XAU", Name: "XAU", IsActive: false},
	}, all)

	active, err := s.ListCurrencies(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, s.UpsertCurrency(ctx, fx.Currency{Code: "EUR", Name: "Euro (EMU)", IsActive: true}))
	active, err = s.ListCurrencies(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Euro (EMU)", active[0].Name)
}

func TestRateSets_Empty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.LatestRateSet(ctx)
	assert.ErrorIs(t, err, fx.ErrNoRates)
	_, err = s.PreviousRateSet(ctx)
	assert.ErrorIs(t, err, fx.ErrNoRates)
}

func TestRateSets_LatestPreviousBetween(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutRateSet(ctx, &fx.RateSet{Base: "USD", Date: "2024-07-21", Rates: map[string]float64{"EUR": 0.86}}))
	_, err := s.PreviousRateSet(ctx)
	assert.ErrorIs(t, err, fx.ErrNoPreviousRates)

	require.NoError(t, s.PutRateSet(ctx, &fx.RateSet{Date: "2024-07-19", Rates: map[string]float64{"EUR": 0.84}}))
	require.NoError(t, s.PutRateSet(ctx, &fx.RateSet{Date: "2024-07-20", Rates: map[string]float64{"EUR": 0.85}}))

	latest, err := s.LatestRateSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, &fx.RateSet{Base: "USD", Date: "2024-07-21", Rates: map[string]float64{"EUR": 0.86}}, latest)

	prev, err := s.PreviousRateSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-20", prev.Date)
	assert.Equal(t, "USD", prev.Base)

	sets, err := s.RateSetsBetween(ctx, "2024-07-20", "2024-07-21")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "2024-07-20", sets[0].Date)
	assert.Equal(t, "2024-07-21", sets[1].Date)

	// Same day replaces.
	require.NoError(t, s.PutRateSet(ctx, &fx.RateSet{Date: "2024-07-21", Rates: map[string]float64{"EUR": 0.9}}))
	latest, err = s.LatestRateSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.9, latest.Rates["EUR"])
}

func TestPutRateSet_BadDate(t *testing.T) {
	s := openTestStore(t)
	err := s.PutRateSet(context.Background(), &fx.RateSet{Date: "21/07/2024"})
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	histPath := filepath.Join(dir, "rates.json")
	require.NoError(t, os.WriteFile(histPath, []byte(`{
		"base": "USD",
		"rates": {
			"2024-07-20": {"EUR": 0.85, "GBP": 0.73},
			"2024-07-21": {"EUR": 0.86, "GBP": 0.74, "XYZ": 2.5}
		}
	}`), 0o644))
	namesPath := filepath.Join(dir, "names.json")
	require.NoError(t, os.WriteFile(namesPath, []byte(`{"EUR": "Euro", "USD": "United States Dollar"}`), 0o644))

	hf, err := ReadHistoryFile(histPath)
	require.NoError(t, err)
	names, err := ReadNamesFile(namesPath)
	require.NoError(t, err)

	res, err := s.Import(ctx, hf, names)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Days: 2, Currencies: 4}, res)

	currencies, err := s.ListCurrencies(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []fx.Currency{
		{Code: "EUR", Name: "Euro", IsActive: true},
		{Code: "GBP", Name: "British Pound", IsActive: true},
		{Code: "USD", Name: "United States Dollar", IsActive: true},
		{Code: "XYZ", Name: "XYZ", IsActive: true},
	}, currencies)

	latest, err := s.LatestRateSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-21", latest.Date)
	assert.Equal(t, 2.5, latest.Rates["XYZ"])
}

func TestImport_KeepsExistingNames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.UpsertCurrency(ctx, fx.Currency{Code: "EUR", Name: "Euro Area", IsActive: true}))

	_, err := s.Import(ctx, &HistoryFile{Rates: map[string]map[string]float64{
		"2024-07-21": {"EUR": 0.86},
	}}, map[string]string{"EUR": "Euro"})
	require.NoError(t, err)

	currencies, err := s.ListCurrencies(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "Euro Area", currencies[0].Name)
	assert.Equal(t, "USD", currencies[1].Code)
}

func TestReadFiles_Errors(t *testing.T) {
	_, err := ReadHistoryFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	names, err := ReadNamesFile("")
	require.NoError(t, err)
	assert.Empty(t, names)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[1,2]`), 0o644))
	_, err = ReadNamesFile(bad)
	assert.Error(t, err)
}

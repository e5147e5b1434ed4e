package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/simonvc/ratedash/internal/cache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/simonvc/ratedash/internal/fx"
	"github.com/simonvc/ratedash/internal/metrics"
	"github.com/simonvc/ratedash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := openStore(t)
	ctx := context.Background()
	days := map[string]map[string]float64{
		"2024-07-10": {"EUR": 0.80, "GBP": 0.70},
		"2024-07-19": {"EUR": 0.84, "GBP": 0.72},
		"2024-07-20": {"EUR": 0.85, "GBP": 0.73},
		"2024-07-21": {"EUR": 0.85, "GBP": 0.74, "JPY": 110},
	}
	for date, rates := range days {
		require.NoError(t, st.PutRateSet(ctx, &fx.RateSet{Base: "USD", Date: date, Rates: rates}))
	}
	for _, c := range []fx.Currency{
		{Code: "USD", Name: "US Dollar", IsActive: true},
		{Code: "EUR", Name: "Euro", IsActive: true},
		{Code: "GBP", Name: "British Pound", IsActive: true},
		{Code: "JPY", Name: "Japanese Yen", IsActive: false},
	} {
		require.NoError(t, st.UpsertCurrency(ctx, c))
	}
	return st
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLatest_DefaultBase(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/latest/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rs := decode[fx.RateSet](t, rec)
	assert.Equal(t, "USD", rs.Base)
	assert.Equal(t, "2024-07-21", rs.Date)
	assert.Equal(t, map[string]float64{"EUR": 0.85, "GBP": 0.74, "JPY": 110}, rs.Rates)
}

func TestLatest_Rebased(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/latest/?base=eur")
	require.Equal(t, http.StatusOK, rec.Code)

	rs := decode[fx.RateSet](t, rec)
	assert.Equal(t, "EUR", rs.Base)
	assert.NotContains(t, rs.Rates, "EUR")
	assert.InDelta(t, 1/0.85, rs.Rates["USD"], 1e-12)
	assert.InDelta(t, 0.74/0.85, rs.Rates["GBP"], 1e-12)
	assert.InDelta(t, 110/0.85, rs.Rates["JPY"], 1e-9)
}

func TestLatest_UnknownBase(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/latest/?base=XXX")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "unknown currency")
}

func TestPrevious(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/previous/")
	require.Equal(t, http.StatusOK, rec.Code)
	rs := decode[fx.RateSet](t, rec)
	assert.Equal(t, "2024-07-20", rs.Date)
	assert.Equal(t, 0.73, rs.Rates["GBP"])
}

func TestEmptyStore(t *testing.T) {
	h := New(openStore(t), "").Handler()

	for _, path := range []string{
		"/api/exchange-rates/latest/",
		"/api/exchange-rates/previous/",
		"/api/exchange-rates/convert/",
		"/api/exchange-rates/historical/",
	} {
		rec := get(t, h, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "no exchange rates available", decode[errorResponse](t, rec).Error, path)
	}
}

func TestConvert(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/convert/?amount=100&from=USD&to=EUR")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fx.Conversion{From: "USD", To: "EUR", Amount: 100, Rate: 0.85, Result: 85, Date: "2024-07-21"},
		decode[fx.Conversion](t, rec))

	rec = get(t, h, "/api/exchange-rates/convert/?amount=10.5&from=EUR&to=USD")
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decode[fx.Conversion](t, rec)
	assert.InDelta(t, 10.5/0.85, conv.Result, 1e-9)

	rec = get(t, h, "/api/exchange-rates/convert/?amount=10&from=EUR&to=GBP")
	require.Equal(t, http.StatusOK, rec.Code)
	conv = decode[fx.Conversion](t, rec)
	assert.InDelta(t, 0.74/0.85, conv.Rate, 1e-12)
}

func TestConvert_Defaults(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/convert/")
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decode[fx.Conversion](t, rec)
	assert.Equal(t, "USD", conv.From)
	assert.Equal(t, "EUR", conv.To)
	assert.Equal(t, 1.0, conv.Amount)
	assert.Equal(t, 0.85, conv.Result)
}

func TestConvert_BadInput(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/convert/?amount=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "invalid amount")

	rec = get(t, h, "/api/exchange-rates/convert/?from=ZZZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistorical(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/historical/?from=USD&to=GBP&period=1w")
	require.Equal(t, http.StatusOK, rec.Code)
	series := decode[fx.Series](t, rec)
	assert.Equal(t, "USD", series.From)
	assert.Equal(t, "GBP", series.To)
	assert.Equal(t, fx.PeriodWeek, series.Period)
	assert.Equal(t, []fx.Sample{
		{Date: "2024-07-19", Rate: 0.72},
		{Date: "2024-07-20", Rate: 0.73},
		{Date: "2024-07-21", Rate: 0.74},
	}, series.Data)

	rec = get(t, h, "/api/exchange-rates/historical/?from=USD&to=GBP&period=1m")
	require.Equal(t, http.StatusOK, rec.Code)
	series = decode[fx.Series](t, rec)
	require.Len(t, series.Data, 4)
	assert.Equal(t, "2024-07-10", series.Data[0].Date)
}

func TestHistorical_SkipsDaysMissingACurrency(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/historical/?from=EUR&to=JPY&period=1y")
	require.Equal(t, http.StatusOK, rec.Code)
	series := decode[fx.Series](t, rec)
	require.Len(t, series.Data, 1)
	assert.InDelta(t, 110/0.85, series.Data[0].Rate, 1e-9)
}

func TestHistorical_Errors(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/exchange-rates/historical/?period=2w")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Error, "invalid period")

	rec = get(t, h, "/api/exchange-rates/historical/?to=ZZZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCodesAndNames(t *testing.T) {
	h := New(seededStore(t), "").Handler()

	rec := get(t, h, "/api/currencies/codes_and_names/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"USD": "US Dollar", "EUR": "Euro", "GBP": "British Pound"},
		decode[map[string]string](t, rec))
}

func TestCache(t *testing.T) {
	st := seededStore(t)
	mc := cache.NewMemoryCache()
	defer mc.Close()
	h := New(st, "", WithCache(mc, time.Minute)).Handler()

	rec := get(t, h, "/api/exchange-rates/latest/?base=GBP")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	first := rec.Body.String()

	require.NoError(t, st.PutRateSet(context.Background(), &fx.RateSet{Date: "2024-07-22", Rates: map[string]float64{"GBP": 0.8}}))

	rec = get(t, h, "/api/exchange-rates/latest/?base=GBP")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, first, rec.Body.String())

	rec = get(t, h, "/api/exchange-rates/latest/?base=XXX")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, h, "/api/exchange-rates/latest/?base=XXX")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestCache_HitsCountedUnderTheirRoute(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	h := New(seededStore(t), "", WithCache(mc, time.Minute)).Handler()

	route := metrics.HTTPRequestsTotal.WithLabelValues("/api/exchange-rates/previous", http.MethodGet, "200")
	catchAll := metrics.HTTPRequestsTotal.WithLabelValues("/api/*", http.MethodGet, "200")
	before, catchAllBefore := testutil.ToFloat64(route), testutil.ToFloat64(catchAll)

	rec := get(t, h, "/api/exchange-rates/previous/?base=EUR")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec = get(t, h, "/api/exchange-rates/previous/?base=EUR")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	assert.Equal(t, before+2, testutil.ToFloat64(route))
	assert.Equal(t, catchAllBefore, testutil.ToFloat64(catchAll))
}

func TestRequestIDAndMetrics(t *testing.T) {
	srv := httptest.NewServer(New(seededStore(t), "").Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/currencies/codes_and_names/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-Id"), 36)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `ratedash_http_requests_total{method="GET",path="/api/currencies/codes_and_names",status_code="200"}`)
}

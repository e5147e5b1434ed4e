package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/ratedash/internal/fx"
)

const (
	defaultFrom   = "USD"
	defaultTo     = "EUR"
	defaultAmount = "1.0"
)

func queryCode(r *http.Request, name, def string) string {
	if v := fx.NormalizeCode(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return def
}

func (s *Server) latestRates(w http.ResponseWriter, r *http.Request) {
	rs, err := s.store.LatestRateSet(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRateSet(w, r, rs)
}

func (s *Server) previousRates(w http.ResponseWriter, r *http.Request) {
	rs, err := s.store.PreviousRateSet(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRateSet(w, r, rs)
}

func (s *Server) writeRateSet(w http.ResponseWriter, r *http.Request, rs *fx.RateSet) {
	rebased, err := rs.ForBase(queryCode(r, "base", fx.DefaultBase))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rebased)
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		raw = defaultAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %q", fx.ErrInvalidAmount, raw))
		return
	}
	from := queryCode(r, "from", defaultFrom)
	to := queryCode(r, "to", defaultTo)

	latest, err := s.store.LatestRateSet(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rate, err := latest.Rate(from, to)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	result := amount.Mul(decimal.NewFromFloat(rate))

	writeJSON(w, http.StatusOK, fx.Conversion{
		From:   from,
		To:     to,
		Amount: amount.InexactFloat64(),
		Rate:   rate,
		Result: result.InexactFloat64(),
		Date:   latest.Date,
	})
}

// historical returns one sample per stored day in [latest-period, latest].
// Days that do not quote both currencies are left out.
func (s *Server) historical(w http.ResponseWriter, r *http.Request) {
	from := queryCode(r, "from", defaultFrom)
	to := queryCode(r, "to", defaultTo)
	rawPeriod := r.URL.Query().Get("period")
	if rawPeriod == "" {
		rawPeriod = string(fx.PeriodWeek)
	}
	period, err := fx.ParsePeriod(rawPeriod)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	latest, err := s.store.LatestRateSet(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := latest.Rate(from, to); errors.Is(err, fx.ErrUnknownCurrency) {
		s.fail(w, r, err)
		return
	}

	end, err := time.Parse(fx.DateLayout, latest.Date)
	if err != nil {
		s.fail(w, r, fmt.Errorf("latest date %q: %w", latest.Date, err))
		return
	}
	start := end.AddDate(0, 0, -period.Days())

	sets, err := s.store.RateSetsBetween(r.Context(), start.Format(fx.DateLayout), latest.Date)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := make([]fx.Sample, 0, len(sets))
	for i := range sets {
		rate, err := sets[i].Rate(from, to)
		if err != nil {
			continue
		}
		data = append(data, fx.Sample{Date: sets[i].Date, Rate: rate})
	}

	writeJSON(w, http.StatusOK, fx.Series{From: from, To: to, Period: period, Data: data})
}

package fx

import (
	"fmt"
	"sort"
)

// DefaultBase is the base currency assumed when a request does not name one.
const DefaultBase = "USD"

// RateSet is every rate quoted against Base on a single day.
type RateSet struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Codes returns the quoted currency codes in ascending order.
func (rs *RateSet) Codes() []string {
	codes := make([]string, 0, len(rs.Rates))
	for code := range rs.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Catalog returns [base, ...codes]. A code equal to base is not removed.
func Catalog(base string, rates map[string]float64) []string {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return append([]string{base}, codes...)
}

// Rate returns how many units of to one unit of from buys.
func (rs *RateSet) Rate(from, to string) (float64, error) {
	switch {
	case from == rs.Base && to == rs.Base:
		return 1, nil
	case from == rs.Base:
		r, ok := rs.Rates[to]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
		}
		return r, nil
	case to == rs.Base:
		r, ok := rs.Rates[from]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
		}
		if r == 0 {
			return 0, fmt.Errorf("%w: %s", ErrZeroRate, from)
		}
		return 1 / r, nil
	}

	fr, ok := rs.Rates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	tr, ok := rs.Rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}
	if fr == 0 {
		return 0, fmt.Errorf("%w: %s", ErrZeroRate, from)
	}
	return tr / fr, nil
}

// ForBase re-quotes the set against base. The new base is left out of the
// returned rates and the old base is added at 1/baseRate.
func (rs *RateSet) ForBase(base string) (*RateSet, error) {
	if base == "" || base == rs.Base {
		return rs, nil
	}
	baseRate, ok := rs.Rates[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, base)
	}
	if baseRate == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroRate, base)
	}

	rates := make(map[string]float64, len(rs.Rates))
	for code, r := range rs.Rates {
		if code == base {
			continue
		}
		rates[code] = r / baseRate
	}
	rates[rs.Base] = 1 / baseRate

	return &RateSet{Base: base, Date: rs.Date, Rates: rates}, nil
}

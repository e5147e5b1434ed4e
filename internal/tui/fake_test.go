package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/ratedash/internal/fx"
)

var errOffline = errors.New("connection refused")

// fakeAPI serves canned rate sets and records conversion and series requests.
type fakeAPI struct {
	mu sync.Mutex

	currencies []string
	names      map[string]string
	latest     map[string]*fx.RateSet
	previous   map[string]*fx.RateSet
	result     float64
	series     []fx.Sample
	fail       bool

	conversions []conversionRequest
	seriesReqs  []seriesKey
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		currencies: []string{"USD", "EUR", "GBP", "JPY"},
		names:      map[string]string{"USD": "US Dollar", "EUR": "Euro", "GBP": "British Pound"},
		latest: map[string]*fx.RateSet{
			"USD": {Base: "USD", Date: "2024-07-21", Rates: map[string]float64{"EUR": 0.85, "GBP": 0.73, "JPY": 110.0}},
			"EUR": {Base: "EUR", Date: "2024-07-21", Rates: map[string]float64{"GBP": 0.86, "JPY": 129.4, "USD": 1.18}},
		},
		previous: map[string]*fx.RateSet{
			"USD": {Base: "USD", Date: "2024-07-20", Rates: map[string]float64{"EUR": 0.84, "GBP": 0.74, "JPY": 109.0}},
		},
		result: 85.0,
		series: []fx.Sample{{Date: "2024-07-22", Rate: 0.73}, {Date: "2024-07-23", Rate: 0.74}},
	}
}

func (f *fakeAPI) FetchCurrencies(ctx context.Context) ([]string, error) {
	if f.fail {
		return nil, errOffline
	}
	return f.currencies, nil
}

func (f *fakeAPI) FetchCurrencyCodesNames(ctx context.Context) (map[string]string, error) {
	if f.fail {
		return nil, errOffline
	}
	return f.names, nil
}

func (f *fakeAPI) LatestRates(ctx context.Context, base string) (*fx.RateSet, error) {
	if f.fail {
		return nil, errOffline
	}
	if rs, ok := f.latest[base]; ok {
		return rs, nil
	}
	return nil, errors.New("server error (400): unknown currency")
}

func (f *fakeAPI) PreviousRates(ctx context.Context, base string) (*fx.RateSet, error) {
	if f.fail {
		return nil, errOffline
	}
	if rs, ok := f.previous[base]; ok {
		return rs, nil
	}
	return nil, errors.New("server error (404): no previous exchange rates available")
}

func (f *fakeAPI) Convert(ctx context.Context, amount, from, to string) (*fx.Conversion, error) {
	f.mu.Lock()
	f.conversions = append(f.conversions, conversionRequest{amount: amount, from: from, to: to})
	f.mu.Unlock()
	if f.fail {
		return nil, errOffline
	}
	return &fx.Conversion{From: from, To: to, Result: f.result, Rate: 0.85, Date: "2024-07-21"}, nil
}

func (f *fakeAPI) Historical(ctx context.Context, from, to string, period fx.Period) (*fx.Series, error) {
	f.mu.Lock()
	f.seriesReqs = append(f.seriesReqs, seriesKey{from: from, to: to, period: period})
	f.mu.Unlock()
	if f.fail {
		return nil, errOffline
	}
	return &fx.Series{From: from, To: to, Period: period, Data: f.series}, nil
}

func newTestBackend(api API) *backend {
	return NewApp(api).backend
}

// collect runs cmd and every batch it expands to, returning the messages.
// Ticks are run too, so keep debounces short in tests that use it.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/ratedash/internal/fx"
)

type dashboardNamesLoadedMsg struct {
	names map[string]string
	err   error
}

// latestRatesLoadedMsg and previousRatesLoadedMsg carry the base they were
// requested for, so replies for an abandoned base can be dropped.
type latestRatesLoadedMsg struct {
	base  string
	rates *fx.RateSet
	err   error
}

type previousRatesLoadedMsg struct {
	base  string
	rates *fx.RateSet
	err   error
}

// cardClickedMsg asks the root view to chart a pair.
type cardClickedMsg struct {
	pair fx.Pair
}

type dashboardModel struct {
	base       string
	currencies []string
	names      map[string]string
	latest     map[string]float64
	previous   map[string]float64
	reversed   bool
	cursor     int
	width      int
}

func newDashboard() dashboardModel {
	return dashboardModel{
		base:     fx.DefaultBase,
		names:    map[string]string{},
		latest:   map[string]float64{},
		previous: map[string]float64{},
	}
}

func (m *dashboardModel) init(b *backend) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			names, err := b.api.FetchCurrencyCodesNames(context.Background())
			return dashboardNamesLoadedMsg{names: names, err: err}
		},
		m.fetchRates(b),
	)
}

// fetchRates requests latest and previous rates for the current base. The two
// replies are applied independently in whatever order they arrive.
func (m *dashboardModel) fetchRates(b *backend) tea.Cmd {
	base := m.base
	return tea.Batch(
		func() tea.Msg {
			rs, err := b.api.LatestRates(context.Background(), base)
			if err != nil {
				b.log.Error("Error fetching rates", "base", base, "err", err)
			}
			return latestRatesLoadedMsg{base: base, rates: rs, err: err}
		},
		func() tea.Msg {
			rs, err := b.api.PreviousRates(context.Background(), base)
			if err != nil {
				b.log.Error("Error fetching previous rates", "base", base, "err", err)
			}
			return previousRatesLoadedMsg{base: base, rates: rs, err: err}
		},
	)
}

func (m dashboardModel) update(msg tea.Msg, b *backend) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardNamesLoadedMsg:
		if msg.err == nil && msg.names != nil {
			m.names = msg.names
		}

	case latestRatesLoadedMsg:
		if msg.base != m.base || msg.err != nil || msg.rates == nil {
			return m, nil
		}
		m.latest = msg.rates.Rates
		m.currencies = fx.Catalog(m.base, msg.rates.Rates)
		m.clampCursor()

	case previousRatesLoadedMsg:
		if msg.base != m.base || msg.err != nil || msg.rates == nil {
			return m, nil
		}
		m.previous = msg.rates.Rates

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Reverse):
			m.reversed = !m.reversed
		case key.Matches(msg, keys.NextBase):
			return m.stepBase(1, b)
		case key.Matches(msg, keys.PrevBase):
			return m.stepBase(-1, b)
		case key.Matches(msg, keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, keys.Up):
			m.moveCursor(-m.columns())
		case key.Matches(msg, keys.Down):
			m.moveCursor(m.columns())
		case key.Matches(msg, keys.Enter):
			if pair, ok := m.selectedPair(); ok {
				return m, func() tea.Msg { return cardClickedMsg{pair: pair} }
			}
		}
	}
	return m, nil
}

func (m dashboardModel) stepBase(delta int, b *backend) (dashboardModel, tea.Cmd) {
	sel := selector{options: sortedUnique(m.currencies), value: m.base}
	if !sel.step(delta) {
		return m, nil
	}
	m.base = sel.value
	m.cursor = 0
	// Quotes against the old base must not be compared with the new ones.
	m.previous = nil
	return m, m.fetchRates(b)
}

// cardCodes lists the currencies shown as cards: the catalog minus the base.
func (m *dashboardModel) cardCodes() []string {
	codes := make([]string, 0, len(m.currencies))
	for _, c := range m.currencies {
		if c != m.base {
			codes = append(codes, c)
		}
	}
	return codes
}

func (m *dashboardModel) selectedPair() (fx.Pair, bool) {
	codes := m.cardCodes()
	if m.cursor < 0 || m.cursor >= len(codes) {
		return fx.Pair{}, false
	}
	from, to := fx.PairLabel(m.base, codes[m.cursor], m.reversed)
	return fx.Pair{From: from, To: to}, true
}

func (m *dashboardModel) columns() int {
	cols := m.width / (cardWidth + 4)
	if cols < 1 {
		return 1
	}
	return cols
}

func (m *dashboardModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.cardCodes()) {
		return
	}
	m.cursor = next
}

func (m *dashboardModel) clampCursor() {
	if n := len(m.cardCodes()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func indicator(c fx.Change) string {
	switch c {
	case fx.ChangeUp:
		return upStyle.Render("▲")
	case fx.ChangeDown:
		return downStyle.Render("▼")
	default:
		return ""
	}
}

func (m *dashboardModel) card(code string, selected bool) string {
	from, to := fx.PairLabel(m.base, code, m.reversed)
	header := from + "/" + to
	if ind := indicator(fx.RateChange(m.latest, m.previous, code, m.reversed)); ind != "" {
		header += " " + ind
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		resultStyle.Render(fx.FormatRate(m.latest[code], m.reversed)),
		dimStyle.Render(fx.DisplayName(from, m.names)+" / "+fx.DisplayName(to, m.names)),
	)
	if selected {
		return selectedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func (m *dashboardModel) view() string {
	var b strings.Builder

	reverse := "off"
	if m.reversed {
		reverse = "on"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		labelStyle.Render("Base"),
		focusedStyle.Render("< "+m.base+" - "+fx.DisplayName(m.base, m.names)+" >"),
		subtitleStyle.Render("Reverse Rates: "+reverse),
	))

	codes := m.cardCodes()
	if len(codes) == 0 {
		b.WriteString(dimStyle.Render("Loading rates..."))
		return b.String()
	}

	cols := m.columns()
	var rows []string
	for start := 0; start < len(codes); start += cols {
		end := start + cols
		if end > len(codes) {
			end = len(codes)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.card(codes[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/ratedash/internal/fx"
)

type histField int

const (
	histFieldFrom histField = iota
	histFieldTo
	histFieldPeriod
	histFieldChart
	histFieldCount
)

type histCurrenciesLoadedMsg struct {
	currencies []string
	err        error
}

type histNamesLoadedMsg struct {
	names map[string]string
	err   error
}

type seriesKey struct {
	from, to string
	period   fx.Period
}

type seriesLoadedMsg struct {
	key    seriesKey
	series *fx.Series
	err    error
}

type historicalModel struct {
	from, to selector
	period   fx.Period
	focus    histField

	currencies []string
	names      map[string]string
	series     []fx.Sample
	hover      int

	width, height int
}

func newHistorical() historicalModel {
	return historicalModel{
		from:   newSelector("EUR"),
		to:     newSelector("USD"),
		period: fx.PeriodMonth,
		names:  map[string]string{},
		hover:  -1,
	}
}

func (m *historicalModel) init(b *backend) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			currencies, err := b.api.FetchCurrencies(context.Background())
			return histCurrenciesLoadedMsg{currencies: currencies, err: err}
		},
		func() tea.Msg {
			names, err := b.api.FetchCurrencyCodesNames(context.Background())
			return histNamesLoadedMsg{names: names, err: err}
		},
		m.fetchSeries(b),
	)
}

func (m *historicalModel) currentKey() seriesKey {
	return seriesKey{from: m.from.value, to: m.to.value, period: m.period}
}

func (m *historicalModel) fetchSeries(b *backend) tea.Cmd {
	k := m.currentKey()
	return func() tea.Msg {
		series, err := b.api.Historical(context.Background(), k.from, k.to, k.period)
		if err != nil {
			b.log.Error("Error fetching historical data", "from", k.from, "to", k.to, "period", k.period, "err", err)
		}
		return seriesLoadedMsg{key: k, series: series, err: err}
	}
}

// setInitial applies a pair chosen elsewhere. An unset pair is ignored.
func (m *historicalModel) setInitial(p fx.Pair, b *backend) tea.Cmd {
	if !p.IsSet() {
		return nil
	}
	if p.From == m.from.value && p.To == m.to.value {
		return nil
	}
	m.from.value = p.From
	m.to.value = p.To
	return m.fetchSeries(b)
}

func (m historicalModel) update(msg tea.Msg, b *backend) (historicalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case histCurrenciesLoadedMsg:
		if msg.err == nil {
			m.currencies = msg.currencies
			m.from.options = msg.currencies
			m.to.options = msg.currencies
		}

	case histNamesLoadedMsg:
		if msg.err == nil && msg.names != nil {
			m.names = msg.names
		}

	case seriesLoadedMsg:
		if msg.key != m.currentKey() || msg.err != nil || msg.series == nil {
			return m, nil
		}
		m.series = msg.series.Data
		m.hover = len(m.series) - 1

	case tea.KeyMsg:
		return m.handleKey(msg, b)
	}
	return m, nil
}

func (m historicalModel) handleKey(msg tea.KeyMsg, b *backend) (historicalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Swap):
		fx.Swap(m.from.value, m.to.value,
			func(v string) { m.from.value = v },
			func(v string) { m.to.value = v })
		return m, m.fetchSeries(b)
	case key.Matches(msg, keys.Up):
		m.focus = (m.focus + histFieldCount - 1) % histFieldCount
		return m, nil
	case key.Matches(msg, keys.Down):
		m.focus = (m.focus + 1) % histFieldCount
		return m, nil
	}

	delta := 0
	switch {
	case key.Matches(msg, keys.Left):
		delta = -1
	case key.Matches(msg, keys.Right):
		delta = 1
	default:
		return m, nil
	}

	switch m.focus {
	case histFieldFrom:
		if m.from.step(delta) {
			return m, m.fetchSeries(b)
		}
	case histFieldTo:
		if m.to.step(delta) {
			return m, m.fetchSeries(b)
		}
	case histFieldPeriod:
		m.period = stepPeriod(m.period, delta)
		return m, m.fetchSeries(b)
	case histFieldChart:
		next := m.hover + delta
		if next >= 0 && next < len(m.series) {
			m.hover = next
		}
	}
	return m, nil
}

func stepPeriod(p fx.Period, delta int) fx.Period {
	n := len(fx.Periods)
	for i, q := range fx.Periods {
		if q == p {
			return fx.Periods[((i+delta)%n+n)%n]
		}
	}
	return fx.PeriodMonth
}

func (m *historicalModel) legend() string {
	return fx.DisplayName(m.from.value, m.names) + " / " + fx.DisplayName(m.to.value, m.names)
}

func (m *historicalModel) field(f histField, label, value string) string {
	if m.focus == f {
		return labelStyle.Render(label) + " " + focusedStyle.Render(value)
	}
	return labelStyle.Render(label) + " " + value
}

func (m *historicalModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Historical Rates"))
	b.WriteString("\n")
	b.WriteString(m.field(histFieldFrom, "From", "< "+m.from.value+" >"))
	b.WriteString("  " + dimStyle.Render("[s] ⇄") + "\n")
	b.WriteString(m.field(histFieldTo, "To", "< "+m.to.value+" >"))
	b.WriteString("\n")
	b.WriteString(m.field(histFieldPeriod, "Period", "< "+m.period.Label()+" >"))
	b.WriteString("\n\n")

	width := m.width - 16
	if width < 20 {
		width = 60
	}
	height := m.height - 16
	if height < 5 {
		height = 12
	}
	b.WriteString(renderChart(chartSpec{
		samples: m.series,
		period:  m.period,
		width:   width,
		height:  height,
		hover:   m.hover,
		from:    m.from.value,
		to:      m.to.value,
		legend:  m.legend(),
	}))
	return b.String()
}

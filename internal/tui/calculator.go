package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/ratedash/internal/fx"
)

// DefaultDebounce is how long the amount and currencies must stay unchanged
// before a conversion is requested.
const DefaultDebounce = 300 * time.Millisecond

type calcField int

const (
	calcFieldAmount calcField = iota
	calcFieldFrom
	calcFieldTo
	calcFieldCount
)

type calcCurrenciesLoadedMsg struct {
	currencies []string
	err        error
}

// convertDueMsg fires when the quiet period of edit seq has passed.
type convertDueMsg struct {
	seq uint64
}

type conversionRequest struct {
	amount, from, to string
}

type conversionLoadedMsg struct {
	seq        uint64
	req        conversionRequest
	conversion *fx.Conversion
	err        error
}

type calculatorModel struct {
	amount   textinput.Model
	from, to selector
	focus    calcField

	currencies []string
	debounce   time.Duration

	// seq numbers every edit; applied is the seq of the result on screen.
	seq     uint64
	applied uint64
	result  *fx.Conversion
	shown   conversionRequest
}

func newCalculator(debounce time.Duration) calculatorModel {
	ti := textinput.New()
	ti.Placeholder = "Enter amount"
	ti.CharLimit = 18
	ti.Prompt = ""
	ti.Focus()

	return calculatorModel{
		amount:   ti,
		from:     newSelector("EUR"),
		to:       newSelector("USD"),
		debounce: debounce,
	}
}

func (m *calculatorModel) init(b *backend) tea.Cmd {
	return func() tea.Msg {
		currencies, err := b.api.FetchCurrencies(context.Background())
		return calcCurrenciesLoadedMsg{currencies: currencies, err: err}
	}
}

func (m calculatorModel) update(msg tea.Msg, b *backend) (calculatorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calcCurrenciesLoadedMsg:
		if msg.err == nil {
			m.currencies = msg.currencies
			m.from.options = msg.currencies
			m.to.options = msg.currencies
		}
		return m, nil

	case convertDueMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.convert(b, msg.seq)

	case conversionLoadedMsg:
		if msg.seq <= m.applied || msg.err != nil || msg.conversion == nil {
			return m, nil
		}
		m.applied = msg.seq
		m.result = msg.conversion
		m.shown = msg.req
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m calculatorModel) handleKey(msg tea.KeyMsg) (calculatorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Swap):
		fx.Swap(m.from.value, m.to.value,
			func(v string) { m.from.value = v },
			func(v string) { m.to.value = v })
		return m, m.schedule()
	case key.Matches(msg, keys.Up):
		m.setFocus((m.focus + calcFieldCount - 1) % calcFieldCount)
		return m, nil
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Enter):
		m.setFocus((m.focus + 1) % calcFieldCount)
		return m, nil
	}

	switch m.focus {
	case calcFieldFrom, calcFieldTo:
		sel := &m.from
		if m.focus == calcFieldTo {
			sel = &m.to
		}
		delta := 0
		switch {
		case key.Matches(msg, keys.Left):
			delta = -1
		case key.Matches(msg, keys.Right):
			delta = 1
		}
		if delta != 0 && sel.step(delta) {
			return m, m.schedule()
		}
		return m, nil
	}

	// Edits that would leave a malformed amount are thrown away.
	before := m.amount.Value()
	next, cmd := m.amount.Update(msg)
	if !fx.ValidAmountInput(next.Value()) {
		return m, nil
	}
	m.amount = next
	if m.amount.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.schedule())
}

func (m *calculatorModel) setFocus(f calcField) {
	m.focus = f
	if f == calcFieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
}

// schedule starts a new quiet period. An empty amount clears the result at
// once and invalidates any reply still in flight.
func (m *calculatorModel) schedule() tea.Cmd {
	m.seq++
	if m.amount.Value() == "" {
		m.result = nil
		m.applied = m.seq
		return nil
	}
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return convertDueMsg{seq: seq}
	})
}

func (m *calculatorModel) convert(b *backend, seq uint64) tea.Cmd {
	req := conversionRequest{amount: m.amount.Value(), from: m.from.value, to: m.to.value}
	return func() tea.Msg {
		conv, err := b.api.Convert(context.Background(), req.amount, req.from, req.to)
		if err != nil {
			b.log.Error("Error converting", "amount", req.amount, "from", req.from, "to", req.to, "err", err)
		}
		return conversionLoadedMsg{seq: seq, req: req, conversion: conv, err: err}
	}
}

// resultLine renders "100,00 EUR = 85,00 USD", or "" when there is no result.
func (m *calculatorModel) resultLine() string {
	if m.result == nil {
		return ""
	}
	amount, err := strconv.ParseFloat(m.shown.amount, 64)
	if err != nil {
		amount = m.result.Amount
	}
	return fx.FormatAmount(amount) + " " + m.shown.from + " = " + fx.FormatAmount(m.result.Result) + " " + m.shown.to
}

func (m *calculatorModel) field(f calcField, label, value string) string {
	if m.focus == f {
		return labelStyle.Render(label) + " " + focusedStyle.Render(value)
	}
	return labelStyle.Render(label) + " " + value
}

func (m *calculatorModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Currency Calculator"))
	b.WriteString("\n")
	b.WriteString(m.field(calcFieldFrom, "From", "< "+m.from.value+" >"))
	b.WriteString("  " + dimStyle.Render("[s] ⇄") + "\n")
	b.WriteString(m.field(calcFieldTo, "To", "< "+m.to.value+" >"))
	b.WriteString("\n\n")
	b.WriteString(m.field(calcFieldAmount, "Amount", m.amount.View()))
	b.WriteString("\n")

	if line := m.resultLine(); line != "" {
		b.WriteString("\n" + boxStyle.Render(resultStyle.Render(line)))
	}
	return b.String()
}

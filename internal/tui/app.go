package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/ratedash/internal/fx"
)

type mode int

const (
	modeDashboard mode = iota
	modeCalculator
	modeHistorical
)

var tabModes = []mode{modeDashboard, modeCalculator, modeHistorical}

func tabLabel(m mode) string {
	switch m {
	case modeDashboard:
		return "Exchange Rates"
	case modeCalculator:
		return "Currency Calculator"
	case modeHistorical:
		return "Historical Rates"
	default:
		return ""
	}
}

type Option func(*App)

// WithLogger sets where failed fetches are logged. The screen belongs to the
// UI, so this should not be stdout.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.backend.log = l }
}

// WithDebounce overrides the calculator's quiet period.
func WithDebounce(d time.Duration) Option {
	return func(a *App) { a.calculator.debounce = d }
}

type App struct {
	backend       *backend
	mode          mode
	tabIndex      int
	width, height int

	// selected is the pair last picked on the dashboard.
	selected fx.Pair

	dashboard  dashboardModel
	calculator calculatorModel
	historical historicalModel
}

func NewApp(api API, opts ...Option) *App {
	app := &App{
		backend: &backend{
			api: api,
			log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		mode:       modeDashboard,
		dashboard:  newDashboard(),
		calculator: newCalculator(DefaultDebounce),
		historical: newHistorical(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.init(a.backend),
		a.calculator.init(a.backend),
		a.historical.init(a.backend),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.width = msg.Width
		a.historical.width = msg.Width
		a.historical.height = msg.Height
		return a, nil
	}

	// Replies are routed by type so views keep loading while another tab is
	// active.
	var cmd tea.Cmd
	switch typedMsg := msg.(type) {
	case dashboardNamesLoadedMsg, latestRatesLoadedMsg, previousRatesLoadedMsg:
		a.dashboard, cmd = a.dashboard.update(msg, a.backend)
		return a, cmd
	case calcCurrenciesLoadedMsg, convertDueMsg, conversionLoadedMsg:
		a.calculator, cmd = a.calculator.update(msg, a.backend)
		return a, cmd
	case histCurrenciesLoadedMsg, histNamesLoadedMsg, seriesLoadedMsg:
		a.historical, cmd = a.historical.update(msg, a.backend)
		return a, cmd
	case cardClickedMsg:
		a.selected = typedMsg.pair
		a.setMode(modeHistorical)
		return a, a.historical.setInitial(a.selected, a.backend)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Tab):
			a.setMode(tabModes[(a.tabIndex+1)%len(tabModes)])
			return a, a.refreshTab()
		case key.Matches(msg, keys.ShiftTab):
			a.setMode(tabModes[(a.tabIndex-1+len(tabModes))%len(tabModes)])
			return a, a.refreshTab()
		}
	}

	switch a.mode {
	case modeDashboard:
		a.dashboard, cmd = a.dashboard.update(msg, a.backend)
	case modeCalculator:
		a.calculator, cmd = a.calculator.update(msg, a.backend)
	case modeHistorical:
		a.historical, cmd = a.historical.update(msg, a.backend)
	}
	return a, cmd
}

func (a *App) setMode(m mode) {
	a.mode = m
	for i, t := range tabModes {
		if t == m {
			a.tabIndex = i
		}
	}
}

// refreshTab refetches the data a tab shows when it comes into view.
func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeDashboard:
		return a.dashboard.fetchRates(a.backend)
	case modeHistorical:
		return a.historical.fetchSeries(a.backend)
	}
	return nil
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content, help string
	switch a.mode {
	case modeDashboard:
		content = a.dashboard.view()
		help = "b/B:base  r:reverse  arrows:select  enter:chart  tab:switch  q:quit"
	case modeCalculator:
		content = a.calculator.view()
		help = "up/down:field  left/right:currency  s:swap  tab:switch  q:quit"
	case modeHistorical:
		content = a.historical.view()
		help = "up/down:field  left/right:change  s:swap  tab:switch  q:quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Currency Exchange Dashboard"),
		tabs,
		"",
		content,
		"",
		dimStyle.Render(help),
	)
}

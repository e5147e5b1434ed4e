package tui

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/simonvc/ratedash/internal/fx"
)

const tickGap = 3

type chartSpec struct {
	samples []fx.Sample
	period  fx.Period
	width   int
	height  int
	hover   int
	from    string
	to      string
	legend  string
}

// renderChart draws the series as a line chart with dated x ticks, a marker
// under the hovered sample and its tooltip.
func renderChart(c chartSpec) string {
	if len(c.samples) == 0 {
		return dimStyle.Render("No data for this period.")
	}

	data := make([]float64, len(c.samples))
	for i, s := range c.samples {
		data[i] = s.Rate
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}

	plot := asciigraph.Plot(data,
		asciigraph.Height(c.height),
		asciigraph.Width(c.width),
		asciigraph.Precision(4),
	)
	offset := axisOffset(plot)

	var b strings.Builder
	b.WriteString(chartStyle.Render(plot))
	b.WriteString("\n")
	b.WriteString(tickRow(c.samples, c.period, offset, c.width))
	b.WriteString("\n")
	if c.hover >= 0 && c.hover < len(c.samples) {
		b.WriteString(strings.Repeat(" ", offset+column(c.hover, len(c.samples), c.width)) + focusedStyle.Render("^"))
		b.WriteString("\n")
		s := c.samples[c.hover]
		b.WriteString(fx.TooltipDate(s.Date) + "  " + resultStyle.Render(fx.TooltipRate(c.from, c.to, s.Rate)))
		b.WriteString("\n")
	}
	b.WriteString("\n" + chartStyle.Render("──") + " " + c.legend)
	return b.String()
}

// axisOffset finds the column where the plotted area starts, just right of
// the y axis.
func axisOffset(plot string) int {
	first, _, _ := strings.Cut(plot, "\n")
	for i, r := range []rune(first) {
		if r == '┤' || r == '┼' {
			return i + 1
		}
	}
	return 0
}

// column maps sample i of n onto a plot width columns wide.
func column(i, n, width int) int {
	if n <= 1 || width <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

// tickRow lays out x-axis labels below the plot. The first and last samples
// are always labelled; others are placed where they fit and differ from the
// previous label.
func tickRow(samples []fx.Sample, period fx.Period, offset, width int) string {
	n := len(samples)
	if n == 0 {
		return ""
	}
	row := []rune(strings.Repeat(" ", offset+width))
	put := func(start int, label string) {
		for i, r := range []rune(label) {
			if start+i >= 0 && start+i < len(row) {
				row[start+i] = r
			}
		}
	}

	lastLabel := fx.TickLabel(period, samples[n-1].Date)
	lastStart := offset + column(n-1, n, width) - len([]rune(lastLabel)) + 1
	if lastStart < offset {
		lastStart = offset
	}

	prevEnd := -tickGap
	prevLabel := ""
	for i := 0; i < n-1; i++ {
		label := fx.TickLabel(period, samples[i].Date)
		if label == prevLabel {
			continue
		}
		start := offset + column(i, n, width)
		end := start + len([]rune(label))
		if start < prevEnd+tickGap || end+tickGap > lastStart {
			continue
		}
		put(start, label)
		prevEnd = end
		prevLabel = label
	}
	if lastLabel != prevLabel {
		put(lastStart, lastLabel)
	}

	return strings.TrimRight(string(row), " ")
}

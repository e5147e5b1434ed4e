package fx

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateLayout is the wire format of rate-set and sample dates.
const DateLayout = "2006-01-02"

var amountRe = regexp.MustCompile(`^\d*\.?\d{0,2}$`)

// ValidAmountInput reports whether s may be held by the amount field: empty,
// or digits with an optional point and at most two fractional digits.
func ValidAmountInput(s string) bool {
	return s == "" || amountRe.MatchString(s)
}

var amountPrinter = message.NewPrinter(language.German)

// FormatAmount renders v with German digit grouping and exactly two decimals,
// e.g. 1234.5 -> "1.234,50".
func FormatAmount(v float64) string {
	return amountPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatRate renders a rate to four decimals, inverted when reversed.
// Zero and NaN (missing) both render as "N/A".
func FormatRate(rate float64, reversed bool) string {
	if rate == 0 || math.IsNaN(rate) {
		return "N/A"
	}
	if reversed {
		rate = 1 / rate
	}
	return fmt.Sprintf("%.4f", rate)
}

// Change is the direction of a rate against the previous period.
type Change int

const (
	ChangeAbsent Change = iota
	ChangeUp
	ChangeDown
)

func (c Change) String() string {
	switch c {
	case ChangeUp:
		return "up"
	case ChangeDown:
		return "down"
	default:
		return "absent"
	}
}

// RateChange compares the latest and previous rate of a currency, both
// inverted when reversed. A missing previous rate yields ChangeAbsent, as does
// a zero one unless reversed: inverted, zero becomes +Inf and reads as down.
func RateChange(latest, previous map[string]float64, code string, reversed bool) Change {
	prev, ok := previous[code]
	if !ok || math.IsNaN(prev) {
		return ChangeAbsent
	}
	cur := latest[code]
	if reversed {
		cur = 1 / cur
		prev = 1 / prev
	}
	if prev == 0 {
		return ChangeAbsent
	}
	if cur > prev {
		return ChangeUp
	}
	return ChangeDown
}

// PairLabel orients a base/currency pair for display.
func PairLabel(base, code string, reversed bool) (from, to string) {
	if reversed {
		return code, base
	}
	return base, code
}

// TickLabel formats a sample date for the chart's x-axis at the given period.
// Dates that do not parse are returned unchanged.
func TickLabel(p Period, date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	switch p {
	case PeriodWeek, PeriodMonth:
		return t.Format("02 Jan")
	case PeriodYear:
		return t.Format("Jan 2006")
	case PeriodFiveYear, PeriodTenYear:
		return t.Format("2006")
	default:
		return date
	}
}

// TooltipDate formats a sample date in full, e.g. "23 Jul 2024".
func TooltipDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006")
}

// TooltipRate phrases a sample as "1 FROM = X TO".
func TooltipRate(from, to string, rate float64) string {
	return fmt.Sprintf("1 %s = %.4f %s", from, rate, to)
}

package fx

import "fmt"

// Period selects how far back a historical series reaches.
type Period string

const (
	PeriodWeek     Period = "1w"
	PeriodMonth    Period = "1m"
	PeriodYear     Period = "1y"
	PeriodFiveYear Period = "5y"
	PeriodTenYear  Period = "10y"
)

// Periods lists every period in selector order.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodYear, PeriodFiveYear, PeriodTenYear}

// ParsePeriod validates a period query value.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// Days is the length of the period in calendar days.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	case PeriodFiveYear:
		return 365 * 5
	case PeriodTenYear:
		return 365 * 10
	default:
		return 0
	}
}

func (p Period) Label() string {
	switch p {
	case PeriodWeek:
		return "1 Week"
	case PeriodMonth:
		return "1 Month"
	case PeriodYear:
		return "1 Year"
	case PeriodFiveYear:
		return "5 Years"
	case PeriodTenYear:
		return "10 Years"
	default:
		return string(p)
	}
}

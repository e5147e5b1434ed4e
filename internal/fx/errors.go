package fx

import "errors"

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNoRates         = errors.New("no exchange rates available")
	ErrNoPreviousRates = errors.New("no previous exchange rates available")
	ErrZeroRate        = errors.New("rate is zero")
)

package market

import "strings"

// Period names a look-back window for history requests.
type Period string

const (
	Period1D  Period = "1d"
	Period1W  Period = "1w"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"

	// DefaultPeriod applies when a request omits the period.
	DefaultPeriod = Period1Mo
)

var periodDays = map[Period]int{
	Period1D:  1,
	Period1W:  7,
	Period1Mo: 30,
	Period3Mo: 90,
	Period6Mo: 180,
	Period1Y:  365,
	Period2Y:  730,
	Period5Y:  1825,
}

// Periods lists the recognised periods, shortest first.
var Periods = []Period{Period1D, Period1W, Period1Mo, Period3Mo, Period6Mo, Period1Y, Period2Y, Period5Y}

// NormalizePeriod trims raw and substitutes DefaultPeriod when it is empty.
// Unrecognised values are kept as-is so callers can echo them back.
func NormalizePeriod(raw string) Period {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultPeriod
	}
	return Period(trimmed)
}

// Known reports whether p is one of the recognised periods.
func (p Period) Known() bool {
	_, ok := periodDays[p]
	return ok
}

// Days returns the window length in calendar days; unknown periods use the default window.
func (p Period) Days() int {
	if days, ok := periodDays[p]; ok {
		return days
	}
	return periodDays[DefaultPeriod]
}

func (p Period) String() string {
	return string(p)
}

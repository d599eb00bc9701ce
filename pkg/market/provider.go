package market

import (
	"context"
	"errors"
	"time"
)

// DateLayout is the calendar-day layout used for bars on the wire and in storage.
const DateLayout = "2006-01-02"

var (
	// ErrNoData indicates the provider has nothing for the symbol/window, including unknown tickers.
	ErrNoData = errors.New("market: no data available")
	// ErrRateLimited is returned once retries are exhausted against a throttling upstream.
	ErrRateLimited = errors.New("market: rate limited")
)

// Provider exposes daily OHLCV data from an external market-data source.
type Provider interface {
	// Latest returns the most recent completed trading day for symbol.
	Latest(ctx context.Context, symbol string) (*Bar, error)
	// History returns daily bars covering period, newest first.
	History(ctx context.Context, symbol string, period Period) ([]Bar, error)
}

// Bar is one trading day of OHLCV data. Date carries no time-of-day component.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Day returns the bar date formatted as YYYY-MM-DD.
func (b Bar) Day() string {
	return b.Date.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into a UTC midnight timestamp.
func ParseDay(value string) (time.Time, error) {
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// Truncate normalises t to the calendar day it falls on in loc, expressed as UTC midnight.
func Truncate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Asset describes an instrument in the served universe.
type Asset struct {
	Symbol string
	Name   string
	Sector string
}

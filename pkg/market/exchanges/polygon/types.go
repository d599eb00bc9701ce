package polygon

import (
	"fmt"
	"math"
	"time"

	"mltrading-api/pkg/market"
)

// AggsResponse mirrors the aggregates envelope shared by the prev and range endpoints.
type AggsResponse struct {
	Ticker       string      `json:"ticker"`
	Status       string      `json:"status"`
	Adjusted     bool        `json:"adjusted"`
	QueryCount   int         `json:"queryCount"`
	ResultsCount int         `json:"resultsCount"`
	Results      []Aggregate `json:"results"`
	RequestID    string      `json:"request_id"`
	Error        string      `json:"error"`
	Message      string      `json:"message"`
}

// Aggregate is a single OHLCV bar. T is the bar start in Unix milliseconds.
type Aggregate struct {
	Ticker string  `json:"T,omitempty"`
	T      int64   `json:"t"`
	O      float64 `json:"o"`
	H      float64 `json:"h"`
	L      float64 `json:"l"`
	C      float64 `json:"c"`
	V      float64 `json:"v"`
	VW     float64 `json:"vw,omitempty"`
	N      int64   `json:"n,omitempty"`
}

// APIError reports a non-success status returned by Polygon.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("polygon: %s (http %d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("polygon: %s: %s", e.Status, e.Message)
}

func (r *AggsResponse) detail() string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return "unknown error"
}

func (a Aggregate) toBar(loc *time.Location) market.Bar {
	return market.Bar{
		Date:   market.Truncate(time.UnixMilli(a.T), loc),
		Open:   a.O,
		High:   a.H,
		Low:    a.L,
		Close:  a.C,
		Volume: int64(math.Round(a.V)),
	}
}

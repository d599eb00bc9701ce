package resolver

import (
	"github.com/shopspring/decimal"

	"mltrading-api/pkg/market"
)

// Source names the tier that produced a result.
type Source string

const (
	SourceCache    Source = "cache"
	SourceDatabase Source = "database"
	SourceAPI      Source = "api"
)

// Status tags a payload as usable data or an upstream failure.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// BarView is the presentation form of a daily bar. Prices carry two fractional digits.
type BarView struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// NewBarView rounds bar for presentation.
func NewBarView(bar market.Bar) BarView {
	return BarView{
		Date:   bar.Day(),
		Open:   round2(bar.Open),
		High:   round2(bar.High),
		Low:    round2(bar.Low),
		Close:  round2(bar.Close),
		Volume: bar.Volume,
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Quote is the current-price payload. Bar fields are present only on success.
type Quote struct {
	Symbol string `json:"symbol"`
	*BarView
	Timestamp string `json:"timestamp,omitempty"`
	DaysOld   *int   `json:"days_old,omitempty"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
}

// History is the price-history payload, newest bar first.
type History struct {
	Symbol string    `json:"symbol"`
	Period string    `json:"period"`
	Data   []BarView `json:"data,omitempty"`
	Count  int       `json:"count,omitempty"`
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
}

func (q *Quote) usable() bool {
	return q.Status == StatusSuccess && q.BarView != nil
}

func (h *History) usable() bool {
	return h.Status == StatusSuccess && len(h.Data) > 0
}

// Resolution wraps a payload with catalog metadata and the tier it came from.
type Resolution[T any] struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Period string `json:"period,omitempty"`
	Data   T      `json:"data"`
	Source Source `json:"source"`
}

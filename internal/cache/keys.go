package cache

import (
	"strings"
	"time"

	"mltrading-api/internal/config"
	"mltrading-api/pkg/market"
)

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLCurrent TTLClass = "current"
	TTLHistory TTLClass = "history"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Current time.Duration
	History time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Current: durationOrDefault(cfg.Current, 300*time.Second),
		History: durationOrDefault(cfg.History, time.Hour),
	}
}

// DefaultTTLSet returns the stock 300s/3600s TTLs.
func DefaultTTLSet() TTLSet {
	return NewTTLSet(config.CacheTTL{})
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLCurrent:
		return t.Current
	case TTLHistory:
		return t.History
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// PriceCurrentKey holds the latest-price payload for symbol.
func PriceCurrentKey(symbol string) string {
	return formatKey("price", "current", symbol)
}

// HistoryKey holds the history payload for symbol over the raw period string.
func HistoryKey(symbol, period string) string {
	return formatKey("history", symbol, period)
}

// SymbolKeys lists every key derived from symbol for the recognised periods.
// History entries under unrecognised periods are left to expire.
func SymbolKeys(symbol string) []string {
	keys := make([]string, 0, len(market.Periods)+1)
	keys = append(keys, PriceCurrentKey(symbol))
	for _, p := range market.Periods {
		keys = append(keys, HistoryKey(symbol, string(p)))
	}
	return keys
}

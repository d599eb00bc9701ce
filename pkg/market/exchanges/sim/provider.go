package sim

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"time"

	"mltrading-api/pkg/market"
)

// Provider synthesises deterministic weekday bars so the service can run without
// an upstream API key. The same (seed, symbol, date) always yields the same bar.
type Provider struct {
	mu      sync.RWMutex
	seed    int64
	now     func() time.Time
	missing map[string]struct{}
}

// Option customises the simulator.
type Option func(*Provider)

// WithSeed changes the random-walk seed.
func WithSeed(seed int64) Option {
	return func(p *Provider) { p.seed = seed }
}

// WithClock replaces the wall clock used to find the latest trading day.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// New constructs a simulator.
func New(opts ...Option) *Provider {
	p := &Provider{
		now:     time.Now,
		missing: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func init() {
	market.RegisterProvider("sim", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		return New(WithSeed(cfg.Seed)), nil
	})
}

func canonical(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// SetMissing makes the simulator report no data for symbol.
func (p *Provider) SetMissing(symbol string, missing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if missing {
		p.missing[canonical(symbol)] = struct{}{}
		return
	}
	delete(p.missing, canonical(symbol))
}

func (p *Provider) isMissing(symbol string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.missing[symbol]
	return ok
}

// Latest returns the bar for the last weekday strictly before today.
func (p *Provider) Latest(ctx context.Context, symbol string) (*market.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sym := canonical(symbol)
	if sym == "" || p.isMissing(sym) {
		return nil, fmt.Errorf("%w: invalid symbol or no data available for %s", market.ErrNoData, sym)
	}
	day := previousWeekday(market.Truncate(p.now(), time.UTC))
	bar := p.barFor(sym, day)
	return &bar, nil
}

// History returns weekday bars within the period window, newest first.
func (p *Provider) History(ctx context.Context, symbol string, period market.Period) ([]market.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sym := canonical(symbol)
	if sym == "" || p.isMissing(sym) {
		return nil, fmt.Errorf("%w: no data available for %s in this period", market.ErrNoData, sym)
	}
	to := market.Truncate(p.now(), time.UTC)
	from := to.AddDate(0, 0, -period.Days())
	bars := make([]market.Bar, 0, period.Days())
	for day := previousWeekday(to); !day.Before(from); day = previousWeekday(day) {
		bars = append(bars, p.barFor(sym, day))
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no data available for %s in this period", market.ErrNoData, sym)
	}
	return bars, nil
}

func previousWeekday(day time.Time) time.Time {
	day = day.AddDate(0, 0, -1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

func (p *Provider) barFor(symbol string, day time.Time) market.Bar {
	base := 20 + float64(p.hash(symbol, "")%48000)/100
	dayIndex := float64(day.Unix() / 86400)
	trend := 1 + 0.15*math.Sin(dayIndex/45+float64(p.hash(symbol, "phase")%628)/100)
	noise := func(tag string) float64 {
		return float64(p.hash(symbol, day.Format(market.DateLayout)+tag)%2000)/100000 - 0.01
	}

	open := base * trend * (1 + noise("o"))
	closePx := base * trend * (1 + noise("c"))
	high := math.Max(open, closePx) * (1 + math.Abs(noise("h")))
	low := math.Min(open, closePx) * (1 - math.Abs(noise("l")))
	volume := int64(1_000_000 + p.hash(symbol, day.Format(market.DateLayout)+"v")%49_000_000)

	return market.Bar{
		Date:   day,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
		Volume: volume,
	}
}

func (p *Provider) hash(parts ...string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s", p.seed, strings.Join(parts, "|"))
	return h.Sum64()
}

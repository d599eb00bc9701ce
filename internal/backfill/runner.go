package backfill

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/pkg/market"
)

// BarReader is the read side of the bar store used to decide what to fetch.
type BarReader interface {
	LatestBar(ctx context.Context, symbol string) (*market.Bar, error)
	BarCounts(ctx context.Context) (map[string]int64, error)
}

// Config wires a Runner.
type Config struct {
	Provider    market.Provider
	Persistence market.Persistence
	Bars        BarReader
	Assets      []market.Asset
	// Delay is slept after every upstream call to respect rate limits.
	Delay time.Duration
}

// Option customises a Runner.
type Option func(*Runner)

// WithSleep replaces the rate-limit sleep; it must return false once ctx is done.
func WithSleep(sleep func(ctx context.Context, d time.Duration) bool) Option {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithClock replaces the wall clock used for report timing.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// Runner fetches bars for a fixed universe one symbol at a time.
type Runner struct {
	provider market.Provider
	sink     market.Persistence
	bars     BarReader
	assets   []market.Asset
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) bool
	now      func() time.Time
}

// NewRunner validates cfg.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	switch {
	case cfg.Provider == nil:
		return nil, errors.New("backfill: missing market provider")
	case cfg.Persistence == nil:
		return nil, errors.New("backfill: missing persistence")
	case cfg.Bars == nil:
		return nil, errors.New("backfill: missing bar reader")
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}
	r := &Runner{
		provider: cfg.Provider,
		sink:     cfg.Persistence,
		bars:     cfg.Bars,
		assets:   dedupe(cfg.Assets),
		delay:    delay,
		sleep:    sleepWithContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Symbols returns the universe in processing order.
func (r *Runner) Symbols() []string {
	out := make([]string, len(r.assets))
	for i, a := range r.assets {
		out[i] = a.Symbol
	}
	return out
}

// Populate loads period of history for every symbol that has no stored bars yet,
// so an interrupted run can be resumed.
func (r *Runner) Populate(ctx context.Context, period market.Period) (*Report, error) {
	if !period.Known() {
		return nil, fmt.Errorf("backfill: unknown period %q", period)
	}
	report := r.newReport(KindPopulate)
	if err := r.sink.UpsertAssets(ctx, r.assets); err != nil {
		return nil, fmt.Errorf("backfill: upsert stocks: %w", err)
	}
	counts, err := r.bars.BarCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("backfill: count stored bars: %w", err)
	}

	total := len(r.assets)
	for i, asset := range r.assets {
		if err := ctx.Err(); err != nil {
			return r.finish(report), err
		}
		tag := fmt.Sprintf("[%d/%d] %s", i+1, total, asset.Symbol)
		if n := counts[asset.Symbol]; n > 0 {
			logx.Infof("populate %s: skipped (%d stored bars)", tag, n)
			report.add(SymbolResult{Symbol: asset.Symbol, Outcome: OutcomeSkipped, Bars: int(n)})
			continue
		}

		result := r.populateOne(ctx, asset.Symbol, period)
		report.add(result)
		if result.Err != nil {
			logx.Errorf("populate %s: %v", tag, result.Err)
		} else {
			logx.Infof("populate %s: %d bars", tag, result.Bars)
		}
		if i < total-1 && !r.sleep(ctx, r.delay) {
			return r.finish(report), ctx.Err()
		}
	}
	return r.finish(report), nil
}

func (r *Runner) populateOne(ctx context.Context, symbol string, period market.Period) SymbolResult {
	bars, err := r.provider.History(ctx, symbol, period)
	if err == nil && len(bars) == 0 {
		err = market.ErrNoData
	}
	if err != nil {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeFailed, Err: err}
	}
	n, err := r.sink.RecordBars(ctx, symbol, bars)
	if err != nil {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeFailed, Bars: n, Err: err}
	}
	return SymbolResult{Symbol: symbol, Outcome: OutcomeAdded, Bars: n}
}

// Update appends the newest trading day for every symbol when it is newer than
// the latest stored bar.
func (r *Runner) Update(ctx context.Context) (*Report, error) {
	report := r.newReport(KindUpdate)
	if err := r.sink.UpsertAssets(ctx, r.assets); err != nil {
		return nil, fmt.Errorf("backfill: upsert stocks: %w", err)
	}

	total := len(r.assets)
	for i, asset := range r.assets {
		if err := ctx.Err(); err != nil {
			return r.finish(report), err
		}
		result := r.updateOne(ctx, asset.Symbol)
		report.add(result)
		switch result.Outcome {
		case OutcomeAdded:
			logx.Infof("update %s: added %s", asset.Symbol, result.Date)
		case OutcomeFailed:
			logx.Errorf("update %s: %v", asset.Symbol, result.Err)
		}
		if i < total-1 && !r.sleep(ctx, r.delay) {
			return r.finish(report), ctx.Err()
		}
	}
	return r.finish(report), nil
}

func (r *Runner) updateOne(ctx context.Context, symbol string) SymbolResult {
	stored, err := r.bars.LatestBar(ctx, symbol)
	if err != nil {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeFailed, Err: err}
	}
	bars, err := r.provider.History(ctx, symbol, market.Period1W)
	if err == nil && len(bars) == 0 {
		err = market.ErrNoData
	}
	if err != nil {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeFailed, Err: err}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.After(bars[j].Date) })
	newest := bars[0]
	if stored != nil && !newest.Date.After(stored.Date) {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeCurrent, Date: stored.Day()}
	}
	n, err := r.sink.RecordBars(ctx, symbol, []market.Bar{newest})
	if err != nil {
		return SymbolResult{Symbol: symbol, Outcome: OutcomeFailed, Err: err}
	}
	return SymbolResult{Symbol: symbol, Outcome: OutcomeAdded, Bars: n, Date: newest.Day()}
}

func (r *Runner) newReport(kind Kind) *Report {
	return &Report{RunID: uuid.NewString(), Kind: kind, Started: r.now()}
}

func (r *Runner) finish(report *Report) *Report {
	report.Elapsed = r.now().Sub(report.Started)
	return report
}

func dedupe(assets []market.Asset) []market.Asset {
	out := make([]market.Asset, 0, len(assets))
	seen := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		a.Symbol = strings.ToUpper(strings.TrimSpace(a.Symbol))
		if a.Symbol == "" {
			continue
		}
		if _, ok := seen[a.Symbol]; ok {
			continue
		}
		seen[a.Symbol] = struct{}{}
		out = append(out, a)
	}
	return out
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

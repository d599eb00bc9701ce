package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/cache"
	"mltrading-api/internal/universe"
	"mltrading-api/pkg/market"
)

// ErrInvalidSymbol is returned when a symbol is not in the served universe.
var ErrInvalidSymbol = errors.New("invalid stock symbol")

const (
	msgNoQuote      = "Invalid symbol or no data available"
	msgNoHistory    = "No data available for this period"
	msgFetchFailure = "Failed to fetch data"
)

// Cache is the freshness-aware key-value tier. Misses and failures both report false.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool
}

// Store is the durable bar tier.
type Store interface {
	LatestBar(ctx context.Context, symbol string) (*market.Bar, error)
	RecentBars(ctx context.Context, symbol string, limit int) ([]market.Bar, error)
}

// Directory validates symbols and supplies display metadata.
type Directory interface {
	Lookup(symbol string) (universe.Stock, bool)
}

// Config tunes tier acceptance and cache lifetimes.
type Config struct {
	CurrentTTL       time.Duration
	HistoryTTL       time.Duration
	FreshnessDays    int
	SufficiencyFloor int
	Overfetch        int
}

// DefaultConfig returns 300s/3600s TTLs, a 7-day freshness window, a 30-bar floor and 2x overfetch.
func DefaultConfig() Config {
	return Config{
		CurrentTTL:       300 * time.Second,
		HistoryTTL:       time.Hour,
		FreshnessDays:    7,
		SufficiencyFloor: 30,
		Overfetch:        2,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CurrentTTL <= 0 {
		c.CurrentTTL = def.CurrentTTL
	}
	if c.HistoryTTL <= 0 {
		c.HistoryTTL = def.HistoryTTL
	}
	if c.FreshnessDays <= 0 {
		c.FreshnessDays = def.FreshnessDays
	}
	if c.SufficiencyFloor <= 0 {
		c.SufficiencyFloor = def.SufficiencyFloor
	}
	if c.Overfetch < 1 {
		c.Overfetch = def.Overfetch
	}
	return c
}

// Dependencies are the tiers consulted by the resolver.
type Dependencies struct {
	Cache     Cache
	Store     Store
	Source    market.Provider
	Directory Directory
	Config    Config
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithClock replaces the wall clock used for freshness and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocation sets the zone whose calendar defines "today".
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// Resolver answers price queries by consulting cache, store and source in order.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	cache  Cache
	store  Store
	source market.Provider
	dir    Directory
	cfg    Config
	now    func() time.Time
	loc    *time.Location
}

// New validates deps and returns a Resolver.
func New(deps Dependencies, opts ...Option) (*Resolver, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("resolver: missing store")
	case deps.Source == nil:
		return nil, errors.New("resolver: missing source")
	case deps.Directory == nil:
		return nil, errors.New("resolver: missing directory")
	}
	r := &Resolver{
		cache:  deps.Cache,
		store:  deps.Store,
		source: deps.Source,
		dir:    deps.Directory,
		cfg:    deps.Config.withDefaults(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// CurrentPrice resolves the latest daily bar for symbol.
func (r *Resolver) CurrentPrice(ctx context.Context, symbol string) (*Resolution[Quote], error) {
	stock, ok := r.dir.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	res := &Resolution[Quote]{Symbol: stock.Symbol, Name: stock.Name, Sector: stock.Sector}
	key := cache.PriceCurrentKey(stock.Symbol)

	if r.fromCache(ctx, key, &res.Data) {
		res.Source = SourceCache
		return res, nil
	}

	bar, err := r.store.LatestBar(ctx, stock.Symbol)
	if err != nil {
		return nil, fmt.Errorf("resolver: latest bar %s: %w", stock.Symbol, err)
	}
	if bar != nil {
		if age := r.daysOld(bar.Date); age < r.cfg.FreshnessDays {
			view := NewBarView(*bar)
			res.Data = Quote{Symbol: stock.Symbol, BarView: &view, DaysOld: &age, Status: StatusSuccess}
			res.Source = SourceDatabase
			r.toCache(ctx, key, res.Data, r.cfg.CurrentTTL)
			return res, nil
		}
	}

	res.Source = SourceAPI
	latest, err := r.source.Latest(ctx, stock.Symbol)
	if err != nil {
		logx.WithContext(ctx).Errorf("resolver: source latest %s: %v", stock.Symbol, err)
		res.Data = Quote{Symbol: stock.Symbol, Status: StatusError, Error: quoteError(err)}
		return res, nil
	}
	view := NewBarView(*latest)
	res.Data = Quote{
		Symbol:    stock.Symbol,
		BarView:   &view,
		Timestamp: r.now().Format(time.RFC3339),
		Status:    StatusSuccess,
	}
	r.toCache(ctx, key, res.Data, r.cfg.CurrentTTL)
	return res, nil
}

// History resolves daily bars for symbol over period, newest first.
// An empty period means the default; unknown periods use the default window
// but are echoed and keyed as given.
func (r *Resolver) History(ctx context.Context, symbol, period string) (*Resolution[History], error) {
	stock, ok := r.dir.Lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	p := market.NormalizePeriod(period)
	res := &Resolution[History]{Symbol: stock.Symbol, Name: stock.Name, Sector: stock.Sector, Period: p.String()}
	key := cache.HistoryKey(stock.Symbol, p.String())

	if r.fromCache(ctx, key, &res.Data) {
		res.Source = SourceCache
		return res, nil
	}

	days := p.Days()
	bars, err := r.store.RecentBars(ctx, stock.Symbol, days*r.cfg.Overfetch)
	if err != nil {
		return nil, fmt.Errorf("resolver: recent bars %s: %w", stock.Symbol, err)
	}
	if len(bars) > 0 && len(bars) >= min(days, r.cfg.SufficiencyFloor) {
		if len(bars) > days {
			bars = bars[:days]
		}
		res.Data = successHistory(stock.Symbol, p, bars)
		res.Source = SourceDatabase
		r.toCache(ctx, key, res.Data, r.cfg.HistoryTTL)
		return res, nil
	}

	res.Source = SourceAPI
	bars, err = r.source.History(ctx, stock.Symbol, p)
	if err == nil && len(bars) == 0 {
		err = market.ErrNoData
	}
	if err != nil {
		logx.WithContext(ctx).Errorf("resolver: source history %s %s: %v", stock.Symbol, p, err)
		res.Data = History{Symbol: stock.Symbol, Period: p.String(), Status: StatusError, Error: historyError(err)}
		return res, nil
	}
	res.Data = successHistory(stock.Symbol, p, bars)
	r.toCache(ctx, key, res.Data, r.cfg.HistoryTTL)
	return res, nil
}

func successHistory(symbol string, p market.Period, bars []market.Bar) History {
	views := make([]BarView, len(bars))
	for i, bar := range bars {
		views[i] = NewBarView(bar)
	}
	return History{Symbol: symbol, Period: p.String(), Data: views, Count: len(views), Status: StatusSuccess}
}

// daysOld counts whole calendar days between date and today in the resolver's zone.
func (r *Resolver) daysOld(date time.Time) int {
	today := market.Truncate(r.now(), r.loc)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(day).Hours() / 24)
}

// cachedPayload is a decoded cache entry that can report whether it holds servable data.
type cachedPayload interface {
	usable() bool
}

// fromCache decodes the entry under key into dst. Entries that fail to decode or
// carry no successful data count as misses.
func (r *Resolver) fromCache(ctx context.Context, key string, dst cachedPayload) bool {
	if r.cache == nil {
		return false
	}
	payload, ok := r.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		logx.WithContext(ctx).Errorf("resolver: discard undecodable cache entry key=%s err=%v", key, err)
		return false
	}
	if !dst.usable() {
		logx.WithContext(ctx).Infof("resolver: discard cache entry without data key=%s", key)
		return false
	}
	return true
}

func (r *Resolver) toCache(ctx context.Context, key string, v any, ttl time.Duration) {
	if r.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		logx.WithContext(ctx).Errorf("resolver: encode cache entry key=%s err=%v", key, err)
		return
	}
	r.cache.Set(ctx, key, payload, ttl)
}

func quoteError(err error) string {
	if errors.Is(err, market.ErrNoData) {
		return msgNoQuote
	}
	return fmt.Sprintf("%s: %v", msgFetchFailure, err)
}

func historyError(err error) string {
	if errors.Is(err, market.ErrNoData) {
		return msgNoHistory
	}
	return fmt.Sprintf("%s: %v", msgFetchFailure, err)
}

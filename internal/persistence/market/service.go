package marketpersist

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "mltrading-api/internal/cache"
	"mltrading-api/internal/repo"
	"mltrading-api/pkg/market"
)

// Service implements market.Persistence on top of the repositories and
// drops cached payloads for every symbol it writes.
type Service struct {
	prices repo.PricesRepo
	stocks repo.StocksRepo
	cache  *cachekeys.Store
}

// Config enumerates dependencies required to persist market data.
type Config struct {
	Prices repo.PricesRepo
	Stocks repo.StocksRepo
	Cache  *cachekeys.Store
}

// NewService wires a market persistence service. Returns nil when dependencies missing.
func NewService(cfg Config) *Service {
	if cfg.Prices == nil || cfg.Stocks == nil {
		return nil
	}
	return &Service{prices: cfg.Prices, stocks: cfg.Stocks, cache: cfg.Cache}
}

// UpsertAssets persists static metadata.
func (s *Service) UpsertAssets(ctx context.Context, assets []market.Asset) error {
	if s == nil || len(assets) == 0 {
		return nil
	}
	return s.stocks.UpsertAssets(ctx, assets)
}

// RecordBars upserts bars for symbol. Bars written before a failure stay
// committed and are reported in the count.
func (s *Service) RecordBars(ctx context.Context, symbol string, bars []market.Bar) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if s == nil || symbol == "" || len(bars) == 0 {
		return 0, nil
	}
	written := 0
	defer func() {
		if written > 0 {
			s.invalidate(ctx, symbol)
		}
	}()
	for _, bar := range bars {
		if err := s.prices.UpsertBar(ctx, symbol, bar); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (s *Service) invalidate(ctx context.Context, symbol string) {
	if s.cache == nil {
		return
	}
	if !s.cache.Delete(ctx, cachekeys.SymbolKeys(symbol)...) {
		logx.WithContext(ctx).Infof("marketpersist: cache invalidation skipped for %s", symbol)
	}
}

var _ market.Persistence = (*Service)(nil)

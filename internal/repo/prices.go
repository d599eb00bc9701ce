package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mltrading-api/internal/model"
	"mltrading-api/pkg/market"
)

// PricesRepo reads and writes daily bars.
type PricesRepo interface {
	// UpsertBar inserts or overwrites the bar for (symbol, bar.Date).
	UpsertBar(ctx context.Context, symbol string, bar market.Bar) error
	// LatestBar returns the newest bar, or nil when the symbol has none.
	LatestBar(ctx context.Context, symbol string) (*market.Bar, error)
	// RecentBars returns up to limit bars, newest first.
	RecentBars(ctx context.Context, symbol string, limit int) ([]market.Bar, error)
	// BarCounts returns the number of stored bars per symbol.
	BarCounts(ctx context.Context) (map[string]int64, error)
}

type pricesRepo struct {
	model model.StockPricesModel
}

func newPricesRepo(deps Dependencies) PricesRepo {
	return &pricesRepo{model: deps.StockPricesModel}
}

func (r *pricesRepo) UpsertBar(ctx context.Context, symbol string, bar market.Bar) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return errors.New("repo: upsert bar: empty symbol")
	}
	if bar.Date.IsZero() {
		return fmt.Errorf("repo: upsert bar %s: missing date", symbol)
	}
	row := &model.StockPrices{
		Symbol: symbol,
		Date:   bar.Day(),
		Open:   bar.Open,
		High:   bar.High,
		Low:    bar.Low,
		Close:  bar.Close,
		Volume: bar.Volume,
	}
	if err := r.model.Upsert(ctx, row); err != nil {
		return fmt.Errorf("repo: upsert bar %s %s: %w", symbol, row.Date, err)
	}
	return nil
}

func (r *pricesRepo) LatestBar(ctx context.Context, symbol string) (*market.Bar, error) {
	row, err := r.model.FindLatest(ctx, symbol)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("repo: latest bar %s: %w", symbol, err)
	}
	bar, err := barFromRow(row)
	if err != nil {
		return nil, err
	}
	return &bar, nil
}

func (r *pricesRepo) RecentBars(ctx context.Context, symbol string, limit int) ([]market.Bar, error) {
	rows, err := r.model.FindRecent(ctx, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("repo: recent bars %s: %w", symbol, err)
	}
	bars := make([]market.Bar, 0, len(rows))
	for _, row := range rows {
		bar, err := barFromRow(row)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (r *pricesRepo) BarCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := r.model.CountBySymbol(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo: bar counts: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Symbol] = row.Bars
	}
	return counts, nil
}

func barFromRow(row *model.StockPrices) (market.Bar, error) {
	day, err := market.ParseDay(row.Date)
	if err != nil {
		return market.Bar{}, fmt.Errorf("repo: parse date %q for %s: %w", row.Date, row.Symbol, err)
	}
	return market.Bar{
		Date:   day,
		Open:   row.Open,
		High:   row.High,
		Low:    row.Low,
		Close:  row.Close,
		Volume: row.Volume,
	}, nil
}

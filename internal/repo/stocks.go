package repo

import (
	"context"
	"fmt"

	"mltrading-api/internal/model"
	"mltrading-api/pkg/market"
)

// StocksRepo persists instrument metadata.
type StocksRepo interface {
	UpsertAssets(ctx context.Context, assets []market.Asset) error
	ListAssets(ctx context.Context) ([]market.Asset, error)
}

type stocksRepo struct {
	model model.StocksModel
}

func newStocksRepo(deps Dependencies) StocksRepo {
	return &stocksRepo{model: deps.StocksModel}
}

func (r *stocksRepo) UpsertAssets(ctx context.Context, assets []market.Asset) error {
	for _, a := range assets {
		if a.Symbol == "" {
			continue
		}
		if err := r.model.Upsert(ctx, &model.Stocks{Symbol: a.Symbol, Name: a.Name, Sector: a.Sector}); err != nil {
			return fmt.Errorf("repo: upsert stock %s: %w", a.Symbol, err)
		}
	}
	return nil
}

func (r *stocksRepo) ListAssets(ctx context.Context) ([]market.Asset, error) {
	rows, err := r.model.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo: list stocks: %w", err)
	}
	out := make([]market.Asset, 0, len(rows))
	for _, row := range rows {
		out = append(out, market.Asset{Symbol: row.Symbol, Name: row.Name, Sector: row.Sector})
	}
	return out, nil
}

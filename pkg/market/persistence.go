package market

import "context"

// Persistence hooks allow batch jobs to persist provider data to durable stores.
type Persistence interface {
	// UpsertAssets persists static instrument metadata.
	UpsertAssets(ctx context.Context, assets []Asset) error
	// RecordBars upserts daily bars for symbol and returns how many rows were written.
	RecordBars(ctx context.Context, symbol string, bars []Bar) (int, error)
}

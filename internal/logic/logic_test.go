package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltrading-api/internal/svc"
	"mltrading-api/internal/types"
	"mltrading-api/internal/universe"
)

func newTestContext() *svc.ServiceContext {
	return &svc.ServiceContext{Universe: universe.Default()}
}

func TestStocksAll(t *testing.T) {
	resp, err := NewStocksLogic(context.Background(), newTestContext()).Stocks(&types.StocksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Count)
	assert.Len(t, resp.Stocks, 50)
	assert.Equal(t, "AAPL", resp.Stocks[0].Symbol)
}

func TestStocksBySector(t *testing.T) {
	resp, err := NewStocksLogic(context.Background(), newTestContext()).Stocks(&types.StocksRequest{Sector: "technology"})
	require.NoError(t, err)
	require.NotZero(t, resp.Count)
	for _, s := range resp.Stocks {
		assert.Equal(t, "Technology", s.Sector)
	}
}

func TestStocksUnknownSector(t *testing.T) {
	_, err := NewStocksLogic(context.Background(), newTestContext()).Stocks(&types.StocksRequest{Sector: "Alchemy"})
	require.ErrorIs(t, err, ErrUnknownSector)
	assert.Equal(t, "no stocks found for sector: Alchemy", err.Error())
}

func TestSectorsSorted(t *testing.T) {
	resp, err := NewSectorsLogic(context.Background(), newTestContext()).Sectors()
	require.NoError(t, err)
	require.NotEmpty(t, resp.Sectors)
	assert.Equal(t, len(resp.Sectors), resp.Count)
	assert.IsIncreasing(t, resp.Sectors)
}

func TestHealth(t *testing.T) {
	resp, err := NewHealthLogic(context.Background(), newTestContext()).Health()
	require.NoError(t, err)
	assert.Equal(t, "online", resp.Status)
}

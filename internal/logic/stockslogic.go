package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/svc"
	"mltrading-api/internal/types"
	"mltrading-api/internal/universe"
)

// ErrUnknownSector is returned when a sector filter matches no stock.
var ErrUnknownSector = errors.New("no stocks found for sector")

type StocksLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStocksLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StocksLogic {
	return &StocksLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *StocksLogic) Stocks(req *types.StocksRequest) (resp *types.StocksResponse, err error) {
	sector := strings.TrimSpace(req.Sector)
	stocks := l.svcCtx.Universe.All()
	if sector != "" {
		stocks = l.svcCtx.Universe.BySector(sector)
		if len(stocks) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSector, sector)
		}
	}
	return &types.StocksResponse{Stocks: toStockItems(stocks), Count: len(stocks)}, nil
}

func toStockItems(stocks []universe.Stock) []types.StockItem {
	items := make([]types.StockItem, len(stocks))
	for i, s := range stocks {
		items[i] = types.StockItem{Symbol: s.Symbol, Name: s.Name, Sector: s.Sector}
	}
	return items
}

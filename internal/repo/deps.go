package repo

import (
	"errors"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"mltrading-api/internal/model"
)

// Dependencies bundles the models and shared infrastructure required by
// repository implementations.
type Dependencies struct {
	DBConn sqlx.SqlConn

	StockPricesModel model.StockPricesModel
	StocksModel      model.StocksModel
}

// Set exposes strongly typed repositories to application logic.
type Set struct {
	Prices PricesRepo
	Stocks StocksRepo
}

// New constructs the repository set, validating required dependencies.
// Missing models are built from DBConn.
func New(deps Dependencies) (*Set, error) {
	if deps.DBConn == nil {
		return nil, errors.New("repo: missing DBConn dependency")
	}
	if deps.StockPricesModel == nil {
		deps.StockPricesModel = model.NewStockPricesModel(deps.DBConn)
	}
	if deps.StocksModel == nil {
		deps.StocksModel = model.NewStocksModel(deps.DBConn)
	}

	return &Set{
		Prices: newPricesRepo(deps),
		Stocks: newStocksRepo(deps),
	}, nil
}

package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ StockPricesModel = (*customStockPricesModel)(nil)

const stockPricesRows = "symbol, CAST(date AS TEXT) AS date, open, high, low, close, volume"

type (
	// StockPricesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customStockPricesModel.
	StockPricesModel interface {
		stockPricesModel
		Upsert(ctx context.Context, data *StockPrices) error
		FindLatest(ctx context.Context, symbol string) (*StockPrices, error)
		FindRecent(ctx context.Context, symbol string, limit int) ([]*StockPrices, error)
		CountBySymbol(ctx context.Context) ([]*SymbolCount, error)
	}

	customStockPricesModel struct {
		*defaultStockPricesModel
	}

	stockPricesModel interface {
		FindOne(ctx context.Context, symbol, date string) (*StockPrices, error)
		Delete(ctx context.Context, symbol, date string) error
	}

	defaultStockPricesModel struct {
		conn  sqlx.SqlConn
		table string
	}

	// StockPrices is one daily bar. Date is YYYY-MM-DD.
	StockPrices struct {
		Symbol string  `db:"symbol"`
		Date   string  `db:"date"`
		Open   float64 `db:"open"`
		High   float64 `db:"high"`
		Low    float64 `db:"low"`
		Close  float64 `db:"close"`
		Volume int64   `db:"volume"`
	}

	SymbolCount struct {
		Symbol string `db:"symbol"`
		Bars   int64  `db:"bars"`
	}
)

// NewStockPricesModel returns a model for the database table.
func NewStockPricesModel(conn sqlx.SqlConn) StockPricesModel {
	return &customStockPricesModel{
		defaultStockPricesModel: &defaultStockPricesModel{conn: conn, table: "stock_prices"},
	}
}

func (m *defaultStockPricesModel) FindOne(ctx context.Context, symbol, date string) (*StockPrices, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE symbol = $1 AND date = $2 LIMIT 1", stockPricesRows, m.table)
	var resp StockPrices
	err := m.conn.QueryRowCtx(ctx, &resp, query, symbol, date)
	switch {
	case err == nil:
		return &resp, nil
	case errors.Is(err, sqlx.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultStockPricesModel) Delete(ctx context.Context, symbol, date string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE symbol = $1 AND date = $2", m.table)
	_, err := m.conn.ExecCtx(ctx, query, symbol, date)
	return err
}

// Upsert inserts the bar or overwrites the existing (symbol, date) row in one statement.
func (m *customStockPricesModel) Upsert(ctx context.Context, data *StockPrices) error {
	query := fmt.Sprintf(`
INSERT INTO %s (symbol, date, open, high, low, close, volume, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (symbol, date) DO UPDATE SET
    open = EXCLUDED.open,
    high = EXCLUDED.high,
    low = EXCLUDED.low,
    close = EXCLUDED.close,
    volume = EXCLUDED.volume,
    updated_at = CURRENT_TIMESTAMP`, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.Symbol, data.Date, data.Open, data.High, data.Low, data.Close, data.Volume)
	return err
}

func (m *customStockPricesModel) FindLatest(ctx context.Context, symbol string) (*StockPrices, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE symbol = $1 ORDER BY date DESC LIMIT 1", stockPricesRows, m.table)
	var resp StockPrices
	err := m.conn.QueryRowCtx(ctx, &resp, query, symbol)
	switch {
	case err == nil:
		return &resp, nil
	case errors.Is(err, sqlx.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// FindRecent returns up to limit bars for symbol, newest first.
func (m *customStockPricesModel) FindRecent(ctx context.Context, symbol string, limit int) ([]*StockPrices, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE symbol = $1 ORDER BY date DESC LIMIT $2", stockPricesRows, m.table)
	var resp []*StockPrices
	if err := m.conn.QueryRowsCtx(ctx, &resp, query, symbol, limit); err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *customStockPricesModel) CountBySymbol(ctx context.Context) ([]*SymbolCount, error) {
	query := fmt.Sprintf("SELECT symbol, COUNT(*) AS bars FROM %s GROUP BY symbol ORDER BY symbol", m.table)
	var resp []*SymbolCount
	if err := m.conn.QueryRowsCtx(ctx, &resp, query); err != nil {
		return nil, err
	}
	return resp, nil
}

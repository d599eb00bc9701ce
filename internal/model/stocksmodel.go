package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ StocksModel = (*customStocksModel)(nil)

const stocksRows = "symbol, name, sector"

type (
	// StocksModel is an interface to be customized, add more methods here,
	// and implement the added methods in customStocksModel.
	StocksModel interface {
		stocksModel
		Upsert(ctx context.Context, data *Stocks) error
		FindAll(ctx context.Context) ([]*Stocks, error)
	}

	customStocksModel struct {
		*defaultStocksModel
	}

	stocksModel interface {
		FindOne(ctx context.Context, symbol string) (*Stocks, error)
		Delete(ctx context.Context, symbol string) error
	}

	defaultStocksModel struct {
		conn  sqlx.SqlConn
		table string
	}

	Stocks struct {
		Symbol string `db:"symbol"`
		Name   string `db:"name"`
		Sector string `db:"sector"`
	}
)

// NewStocksModel returns a model for the database table.
func NewStocksModel(conn sqlx.SqlConn) StocksModel {
	return &customStocksModel{
		defaultStocksModel: &defaultStocksModel{conn: conn, table: "stocks"},
	}
}

func (m *defaultStocksModel) FindOne(ctx context.Context, symbol string) (*Stocks, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE symbol = $1 LIMIT 1", stocksRows, m.table)
	var resp Stocks
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

func (m *defaultStocksModel) Delete(ctx context.Context, symbol string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE symbol = $1", m.table)
	_, err := m.conn.ExecCtx(ctx, query, symbol)
	return err
}

func (m *customStocksModel) Upsert(ctx context.Context, data *Stocks) error {
	query := fmt.Sprintf(`
INSERT INTO %s (symbol, name, sector, created_at, updated_at)
VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (symbol) DO UPDATE SET
    name = EXCLUDED.name,
    sector = EXCLUDED.sector,
    updated_at = CURRENT_TIMESTAMP`, m.table)
	_, err := m.conn.ExecCtx(ctx, query, data.Symbol, data.Name, data.Sector)
	return err
}

func (m *customStocksModel) FindAll(ctx context.Context) ([]*Stocks, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY symbol", stocksRows, m.table)
	var resp []*Stocks
	if err := m.conn.QueryRowsCtx(ctx, &resp, query); err != nil {
		return nil, err
	}
	return resp, nil
}

package model

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the stocks and stock_prices tables when they do not exist.
func EnsureSchema(ctx context.Context, conn sqlx.SqlConn) error {
	for _, stmt := range schemaStatements() {
		if _, err := conn.ExecCtx(ctx, stmt); err != nil {
			return fmt.Errorf("model: ensure schema: %w", err)
		}
	}
	return nil
}

func schemaStatements() []string {
	var lines []string
	for _, line := range strings.Split(schemaSQL, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}
	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

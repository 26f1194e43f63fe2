package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/report/dto"
	"github.com/shopspring/decimal"
)

// Tables that may be counted. Anything else is refused before reaching SQL.
var countable = map[string]bool{
	"products":               true,
	"customers":              true,
	"employees":              true,
	"suppliers":              true,
	"sales":                  true,
	"financial_transactions": true,
	"users":                  true,
}

type SQLiteRepository struct {
	DB database.Handle
}

func NewSQLiteRepository(db database.Handle) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Count(ctx context.Context, table string) (int64, error) {
	if !countable[table] {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}
	var n int64
	err := r.DB.GetContext(ctx, &n, "SELECT count(*) FROM "+table)
	return n, err
}

// Amounts are read row by row and summed in decimal by the caller, so totals
// do not pick up float rounding from SUM over REAL columns.
func (r *SQLiteRepository) SaleAmounts(ctx context.Context) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	err := r.DB.SelectContext(ctx, &out, `SELECT COALESCE(total_amount, 0) FROM sales`)
	return out, err
}

func (r *SQLiteRepository) TransactionAmounts(ctx context.Context, txType string) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	err := r.DB.SelectContext(ctx, &out,
		`SELECT COALESCE(amount, 0) FROM financial_transactions WHERE type = ?`, txType)
	return out, err
}

func (r *SQLiteRepository) RecentSales(ctx context.Context, limit int) ([]dto.SalesPoint, error) {
	var out []dto.SalesPoint
	err := r.DB.SelectContext(ctx, &out, `
		SELECT date, COALESCE(total_amount, 0) AS amount
		FROM sales
		ORDER BY date DESC, id DESC
		LIMIT ?`, limit)
	return out, err
}

func (r *SQLiteRepository) RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionRow, error) {
	var out []dto.TransactionRow
	err := r.DB.SelectContext(ctx, &out, `
		SELECT date, type, COALESCE(amount, 0) AS amount
		FROM financial_transactions
		ORDER BY date DESC, id DESC
		LIMIT ?`, limit)
	return out, err
}

// Expenses returns every expense row as (category, amount), ordered by
// category so the caller can fold runs.
func (r *SQLiteRepository) Expenses(ctx context.Context) ([]dto.CategoryTotal, error) {
	var out []dto.CategoryTotal
	err := r.DB.SelectContext(ctx, &out, `
		SELECT category, COALESCE(amount, 0) AS amount
		FROM financial_transactions
		WHERE type = ?
		ORDER BY category, id`, model.TransactionExpense)
	return out, err
}

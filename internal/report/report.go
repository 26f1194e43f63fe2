// Package report computes read-only summaries over the other tables: the
// dashboard counts, finance totals and the chart series.
package report

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/report/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Count(ctx context.Context, table string) (int64, error)
	SaleAmounts(ctx context.Context) ([]decimal.Decimal, error)
	TransactionAmounts(ctx context.Context, txType string) ([]decimal.Decimal, error)

	// RecentSales and RecentTransactions return at most limit rows, newest first.
	RecentSales(ctx context.Context, limit int) ([]dto.SalesPoint, error)
	RecentTransactions(ctx context.Context, limit int) ([]dto.TransactionRow, error)
	Expenses(ctx context.Context) ([]dto.CategoryTotal, error)
}

type UseCase interface {
	Dashboard(ctx context.Context) (*dto.Dashboard, error)
	Finance(ctx context.Context) (*dto.FinanceSummary, error)
	SalesTrend(ctx context.Context) ([]dto.SalesPoint, error)
	FinanceTrend(ctx context.Context) ([]dto.FinancePoint, error)
	ExpenseByCategory(ctx context.Context) ([]dto.CategoryTotal, error)
}

package usecase

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/apperror"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/report"
	"github.com/fekuna/omnipos-backoffice/internal/report/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const trendLength = 7

type reportUseCase struct {
	repo   report.Repository
	logger logger.ZapLogger
}

func NewReportUseCase(repo report.Repository, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{repo: repo, logger: log}
}

func (uc *reportUseCase) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	const op = "report.dashboard"

	out := &dto.Dashboard{}
	counts := []struct {
		table string
		dest  *int64
	}{
		{"products", &out.Products},
		{"customers", &out.Customers},
		{"employees", &out.Employees},
		{"suppliers", &out.Suppliers},
		{"sales", &out.Sales},
	}
	for _, c := range counts {
		n, err := uc.repo.Count(ctx, c.table)
		if err != nil {
			uc.logger.Error("failed to count rows", zap.String("table", c.table), zap.Error(err))
			return nil, apperror.Store(op, "failed to load dashboard", err)
		}
		*c.dest = n
	}

	amounts, err := uc.repo.SaleAmounts(ctx)
	if err != nil {
		uc.logger.Error("failed to load sale amounts", zap.Error(err))
		return nil, apperror.Store(op, "failed to load dashboard", err)
	}
	out.Revenue = sum(amounts)
	return out, nil
}

func (uc *reportUseCase) Finance(ctx context.Context) (*dto.FinanceSummary, error) {
	const op = "report.finance"

	income, err := uc.repo.TransactionAmounts(ctx, model.TransactionIncome)
	if err != nil {
		uc.logger.Error("failed to load income", zap.Error(err))
		return nil, apperror.Store(op, "failed to load finance summary", err)
	}
	expense, err := uc.repo.TransactionAmounts(ctx, model.TransactionExpense)
	if err != nil {
		uc.logger.Error("failed to load expenses", zap.Error(err))
		return nil, apperror.Store(op, "failed to load finance summary", err)
	}

	out := &dto.FinanceSummary{Income: sum(income), Expense: sum(expense)}
	out.Net = out.Income.Sub(out.Expense)
	return out, nil
}

// SalesTrend returns the latest sales, oldest first, for charting.
func (uc *reportUseCase) SalesTrend(ctx context.Context) ([]dto.SalesPoint, error) {
	points, err := uc.repo.RecentSales(ctx, trendLength)
	if err != nil {
		uc.logger.Error("failed to load sales trend", zap.Error(err))
		return nil, apperror.Store("report.sales_trend", "failed to load sales trend", err)
	}
	reverse(points)
	return points, nil
}

func (uc *reportUseCase) FinanceTrend(ctx context.Context) ([]dto.FinancePoint, error) {
	rows, err := uc.repo.RecentTransactions(ctx, trendLength)
	if err != nil {
		uc.logger.Error("failed to load finance trend", zap.Error(err))
		return nil, apperror.Store("report.finance_trend", "failed to load finance trend", err)
	}

	points := make([]dto.FinancePoint, len(rows))
	for i, row := range rows {
		p := dto.FinancePoint{Date: row.Date, Income: decimal.Zero, Expense: decimal.Zero}
		switch row.Type {
		case model.TransactionIncome:
			p.Income = row.Amount
		case model.TransactionExpense:
			p.Expense = row.Amount
		}
		points[i] = p
	}
	reverse(points)
	return points, nil
}

func (uc *reportUseCase) ExpenseByCategory(ctx context.Context) ([]dto.CategoryTotal, error) {
	rows, err := uc.repo.Expenses(ctx)
	if err != nil {
		uc.logger.Error("failed to load expenses", zap.Error(err))
		return nil, apperror.Store("report.expense_by_category", "failed to load expenses", err)
	}

	var out []dto.CategoryTotal
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].Category == row.Category {
			out[n-1].Amount = out[n-1].Amount.Add(row.Amount)
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

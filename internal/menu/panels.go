package menu

import (
	"context"

	"github.com/fekuna/omnipos-backoffice/internal/report"
	"github.com/fekuna/omnipos-backoffice/internal/report/dto"
	"github.com/shopspring/decimal"
)

// DashboardView shows the headline counts and the recent sales trend.
type DashboardView struct {
	reports report.UseCase

	Stats *dto.Dashboard
	Trend []dto.SalesPoint
}

func NewDashboardView(reports report.UseCase) *DashboardView {
	return &DashboardView{reports: reports}
}

func (v *DashboardView) Refresh(ctx context.Context) error {
	stats, err := v.reports.Dashboard(ctx)
	if err != nil {
		return err
	}
	trend, err := v.reports.SalesTrend(ctx)
	if err != nil {
		return err
	}
	v.Stats, v.Trend = stats, trend
	return nil
}

func (v *DashboardView) Close() {
	v.Stats, v.Trend = nil, nil
}

// FinancePanel is the summary shown beside the transaction list. It is
// recomputed whenever a transaction is saved or deleted.
type FinancePanel struct {
	reports report.UseCase

	Summary  *dto.FinanceSummary
	Trend    []dto.FinancePoint
	Expenses []dto.CategoryTotal
}

func NewFinancePanel(reports report.UseCase) *FinancePanel {
	return &FinancePanel{reports: reports}
}

func (p *FinancePanel) Refresh(ctx context.Context) error {
	summary, err := p.reports.Finance(ctx)
	if err != nil {
		return err
	}
	trend, err := p.reports.FinanceTrend(ctx)
	if err != nil {
		return err
	}
	expenses, err := p.reports.ExpenseByCategory(ctx)
	if err != nil {
		return err
	}
	p.Summary, p.Trend, p.Expenses = summary, trend, expenses
	return nil
}

// SalesPanel charts the recent sales beside the sales list, both as a
// trend and as each sale's share of the charted total.
type SalesPanel struct {
	reports report.UseCase

	Trend  []dto.SalesPoint
	Shares []dto.SalesShare
}

func NewSalesPanel(reports report.UseCase) *SalesPanel {
	return &SalesPanel{reports: reports}
}

func (p *SalesPanel) Refresh(ctx context.Context) error {
	trend, err := p.reports.SalesTrend(ctx)
	if err != nil {
		return err
	}
	p.Trend, p.Shares = trend, shares(trend)
	return nil
}

var hundred = decimal.NewFromInt(100)

// shares rounds to one decimal place; with a zero total every share is zero.
func shares(points []dto.SalesPoint) []dto.SalesShare {
	total := decimal.Zero
	for _, pt := range points {
		total = total.Add(pt.Amount)
	}
	out := make([]dto.SalesShare, 0, len(points))
	for _, pt := range points {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = pt.Amount.Mul(hundred).Div(total).Round(1)
		}
		out = append(out, dto.SalesShare{Date: pt.Date, Amount: pt.Amount, Percent: pct})
	}
	return out
}

// Package finance manages income and expense transactions. Totals and charts
// over them live in the report package.
package finance

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

var Types = []string{model.TransactionIncome, model.TransactionExpense}

var Descriptor = &resource.Descriptor{
	Table:   "financial_transactions",
	Entity:  "transaction",
	Title:   "Finance",
	OrderBy: "date DESC",
	Fields: []resource.Field{
		{Name: "date", Label: "Date", Required: true, Summary: true, Default: resource.Today},
		{Name: "type", Label: "Type", Required: true, Options: Types, Summary: true, Default: resource.Const(model.TransactionIncome)},
		{Name: "category", Label: "Category", Required: true, Summary: true},
		{Name: "amount", Label: "Amount", Kind: resource.Decimal, Required: true, Summary: true},
		{Name: "description", Label: "Description"},
	},
}

type Manager = resource.Manager[model.FinancialTransaction]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.FinancialTransaction](Descriptor, repository.NewSQLiteRepository(db), log)
}

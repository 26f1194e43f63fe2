package model

import "github.com/shopspring/decimal"

const (
	TransactionIncome  = "Income"
	TransactionExpense = "Expense"
)

type FinancialTransaction struct {
	ID          int64           `db:"id" json:"id"`
	Date        string          `db:"date" json:"date"`
	Type        string          `db:"type" json:"type"`
	Category    string          `db:"category" json:"category"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
}

package dto

import "github.com/shopspring/decimal"

type Dashboard struct {
	Products  int64           `json:"products"`
	Customers int64           `json:"customers"`
	Employees int64           `json:"employees"`
	Suppliers int64           `json:"suppliers"`
	Sales     int64           `json:"sales"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type FinanceSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type SalesPoint struct {
	Date   string          `db:"date" json:"date"`
	Amount decimal.Decimal `db:"amount" json:"amount"`
}

type TransactionRow struct {
	Date   string          `db:"date"`
	Type   string          `db:"type"`
	Amount decimal.Decimal `db:"amount"`
}

// FinancePoint is one transaction split into its income and expense parts;
// one of the two is always zero.
type FinancePoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type CategoryTotal struct {
	Category string          `db:"category" json:"category"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// SalesShare is one sale's slice of the trend total, in percent.
type SalesShare struct {
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

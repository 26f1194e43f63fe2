package model

import "github.com/shopspring/decimal"

// Sale references its customer by name only. Deleting the customer leaves the
// sale in place with the old name.
type Sale struct {
	ID           int64           `db:"id" json:"id"`
	Date         string          `db:"date" json:"date"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	Items        string          `db:"items" json:"items"`
	ItemsCount   int64           `db:"items_count" json:"items_count"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
}

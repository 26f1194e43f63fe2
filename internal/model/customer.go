package model

type Customer struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Email          string `db:"email" json:"email"`
	Phone          string `db:"phone" json:"phone"`
	Address        string `db:"address" json:"address"`
	Notes          string `db:"notes" json:"notes"`
	TotalPurchases int64  `db:"total_purchases" json:"total_purchases"` // edited by hand, never derived
}

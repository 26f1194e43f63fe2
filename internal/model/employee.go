package model

import "github.com/shopspring/decimal"

const (
	EmployeeActive     = "Active"
	EmployeeOnLeave    = "On Leave"
	EmployeeTerminated = "Terminated"
)

type Employee struct {
	ID         int64           `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Position   string          `db:"position" json:"position"`
	Department string          `db:"department" json:"department"`
	Status     string          `db:"status" json:"status"`
	Email      string          `db:"email" json:"email"`
	Phone      string          `db:"phone" json:"phone"`
	Address    string          `db:"address" json:"address"`
	HireDate   string          `db:"hire_date" json:"hire_date"`
	Salary     decimal.Decimal `db:"salary" json:"salary"`
	Notes      string          `db:"notes" json:"notes"`
}

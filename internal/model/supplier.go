package model

const (
	SupplierActive   = "Active"
	SupplierInactive = "Inactive"
	SupplierPending  = "Pending"
)

type Supplier struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	Status        string `db:"status" json:"status"`
	Address       string `db:"address" json:"address"`
	PaymentTerms  string `db:"payment_terms" json:"payment_terms"`
	Notes         string `db:"notes" json:"notes"`
}

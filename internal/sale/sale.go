package sale

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

// Descriptor lists sales newest first. customer_name is free text and is not
// checked against the customers table.
var Descriptor = &resource.Descriptor{
	Table:   "sales",
	Entity:  "sale",
	Title:   "Sales",
	OrderBy: "date DESC",
	Fields: []resource.Field{
		{Name: "date", Label: "Date", Required: true, Summary: true, Default: resource.Timestamp},
		{Name: "customer_name", Label: "Customer", Required: true, Summary: true},
		{Name: "items", Label: "Items", Required: true},
		{Name: "items_count", Label: "Items Count", Kind: resource.Integer, Summary: true, Default: resource.Const("0")},
		{Name: "total_amount", Label: "Total Amount", Kind: resource.Decimal, Required: true, Summary: true},
	},
}

type Manager = resource.Manager[model.Sale]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.Sale](Descriptor, repository.NewSQLiteRepository(db), log)
}

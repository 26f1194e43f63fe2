package customer

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

// Descriptor keeps total_purchases as a hand-edited figure; it is not derived
// from the sales table.
var Descriptor = &resource.Descriptor{
	Table:   "customers",
	Entity:  "customer",
	Title:   "Customers",
	OrderBy: "name",
	Fields: []resource.Field{
		{Name: "name", Label: "Name", Required: true, Summary: true},
		{Name: "email", Label: "Email", Required: true, Unique: true, Email: true, Summary: true},
		{Name: "phone", Label: "Phone", Required: true, Summary: true},
		{Name: "address", Label: "Address"},
		{Name: "notes", Label: "Notes"},
		{Name: "total_purchases", Label: "Total Purchases", Kind: resource.Integer, Summary: true, Default: resource.Const("0")},
	},
}

type Manager = resource.Manager[model.Customer]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.Customer](Descriptor, repository.NewSQLiteRepository(db), log)
}

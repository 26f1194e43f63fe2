package supplier

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

var Statuses = []string{model.SupplierActive, model.SupplierInactive, model.SupplierPending}

var Descriptor = &resource.Descriptor{
	Table:   "suppliers",
	Entity:  "supplier",
	Title:   "Suppliers",
	OrderBy: "name",
	Fields: []resource.Field{
		{Name: "name", Label: "Name", Required: true, Summary: true},
		{Name: "contact_person", Label: "Contact Person", Required: true, Summary: true},
		{Name: "email", Label: "Email", Required: true, Unique: true, Email: true, Summary: true},
		{Name: "phone", Label: "Phone", Required: true},
		{Name: "status", Label: "Status", Required: true, Options: Statuses, Summary: true, Default: resource.Const(model.SupplierActive)},
		{Name: "address", Label: "Address"},
		{Name: "payment_terms", Label: "Payment Terms"},
		{Name: "notes", Label: "Notes"},
	},
}

type Manager = resource.Manager[model.Supplier]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.Supplier](Descriptor, repository.NewSQLiteRepository(db), log)
}

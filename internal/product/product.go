// Package product manages the product catalogue.
package product

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

var Descriptor = &resource.Descriptor{
	Table:   "products",
	Entity:  "product",
	Title:   "Products",
	OrderBy: "name",
	Fields: []resource.Field{
		{Name: "name", Label: "Name", Required: true, Summary: true},
		{Name: "category", Label: "Category", Required: true, Summary: true},
		{Name: "stock", Label: "Stock", Kind: resource.Integer, Required: true, NonNegative: true, Summary: true},
		{Name: "price", Label: "Price", Kind: resource.Decimal, Required: true, Summary: true},
		{Name: "description", Label: "Description"},
	},
}

type Manager = resource.Manager[model.Product]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.Product](Descriptor, repository.NewSQLiteRepository(db), log)
}

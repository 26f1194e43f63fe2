package employee

import (
	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/fekuna/omnipos-backoffice/internal/resource/repository"
)

var Statuses = []string{model.EmployeeActive, model.EmployeeOnLeave, model.EmployeeTerminated}

var Descriptor = &resource.Descriptor{
	Table:   "employees",
	Entity:  "employee",
	Title:   "Employees",
	OrderBy: "name",
	Fields: []resource.Field{
		{Name: "name", Label: "Name", Required: true, Summary: true},
		{Name: "position", Label: "Position", Required: true, Summary: true},
		{Name: "department", Label: "Department", Required: true, Summary: true},
		{Name: "status", Label: "Status", Required: true, Options: Statuses, Summary: true, Default: resource.Const(model.EmployeeActive)},
		{Name: "email", Label: "Email", Required: true, Unique: true, Email: true},
		{Name: "phone", Label: "Phone", Required: true},
		{Name: "address", Label: "Address"},
		{Name: "hire_date", Label: "Hire Date", Required: true, Default: resource.Today},
		{Name: "salary", Label: "Salary", Kind: resource.Decimal, Required: true, NonNegative: true},
		{Name: "notes", Label: "Notes"},
	},
}

type Manager = resource.Manager[model.Employee]

func NewManager(db database.Handle, log logger.ZapLogger) *Manager {
	return resource.NewManager[model.Employee](Descriptor, repository.NewSQLiteRepository(db), log)
}

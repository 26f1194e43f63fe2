package resource

import "context"

// Repository runs the generic SQL for a descriptor. dest arguments follow
// sqlx: a pointer to a struct for Get, a pointer to a slice for List.
type Repository interface {
	List(ctx context.Context, d *Descriptor, dest interface{}) error
	Get(ctx context.Context, d *Descriptor, id int64, dest interface{}) (bool, error)
	Insert(ctx context.Context, d *Descriptor, values []interface{}) (int64, error)
	Update(ctx context.Context, d *Descriptor, id int64, values []interface{}) (bool, error)
	Delete(ctx context.Context, d *Descriptor, id int64) error

	IsUnique(ctx context.Context, d *Descriptor, column, value string, excludeID int64) (bool, error)
}

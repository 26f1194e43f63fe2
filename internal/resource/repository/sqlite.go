package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/resource"
	"github.com/jmoiron/sqlx"
)

// SQLiteRepository builds its statements from the descriptor. Table, column
// and ordering names come from code, never from user input.
type SQLiteRepository struct {
	DB database.Handle
}

func NewSQLiteRepository(db database.Handle) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) List(ctx context.Context, d *resource.Descriptor, dest interface{}) error {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		selectList(d.SummaryFields()), d.Table, orderBy(d))
	return r.DB.SelectContext(ctx, dest, query)
}

func (r *SQLiteRepository) Get(ctx context.Context, d *resource.Descriptor, id int64, dest interface{}) (bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ? LIMIT 1", selectList(d.Fields), d.Table)
	err := r.DB.GetContext(ctx, dest, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, d *resource.Descriptor, values []interface{}) (int64, error) {
	cols := columnNames(d.Fields)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.Table, strings.Join(cols, ", "), placeholders)

	var id int64
	err := database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, values...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (r *SQLiteRepository) Update(ctx context.Context, d *resource.Descriptor, id int64, values []interface{}) (bool, error) {
	cols := columnNames(d.Fields)
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", d.Table, strings.Join(sets, ", "))
	args := append(append([]interface{}{}, values...), id)

	var affected int64
	err := database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected > 0, err
}

func (r *SQLiteRepository) Delete(ctx context.Context, d *resource.Descriptor, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", d.Table)
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, id)
		return err
	})
}

func (r *SQLiteRepository) IsUnique(ctx context.Context, d *resource.Descriptor, column, value string, excludeID int64) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = ?", d.Table, column)
	args := []interface{}{value}
	if excludeID != 0 {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func columnNames(fields []resource.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// selectList reads id plus fields, mapping NULLs to zero values so rows
// written by older versions still scan.
func selectList(fields []resource.Field) string {
	parts := []string{"id"}
	for _, f := range fields {
		zero := "''"
		if f.Kind != resource.Text {
			zero = "0"
		}
		parts = append(parts, fmt.Sprintf("COALESCE(%s, %s) AS %s", f.Name, zero, f.Name))
	}
	return strings.Join(parts, ", ")
}

func orderBy(d *resource.Descriptor) string {
	if d.OrderBy == "" {
		return "id"
	}
	return d.OrderBy
}

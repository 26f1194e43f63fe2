package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB database.Handle
}

func NewSQLiteRepository(db database.Handle) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *model.User) error {
	return database.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password, email, role) VALUES (?, ?, ?, ?)`,
			u.Username, u.PasswordHash, u.Email, u.Role)
		if err != nil {
			return err
		}
		u.ID, err = res.LastInsertId()
		return err
	})
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	query := `SELECT id, username, password, email, role FROM users WHERE username = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *SQLiteRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT count(*) FROM users WHERE username = ?`, username)
}

func (r *SQLiteRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT count(*) FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	// sqlx does not know the modernc driver name; it binds with '?'.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

type Config struct {
	Path        string
	BusyTimeout int // milliseconds
}

// Handle is the part of *sqlx.DB the repositories depend on.
type Handle interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

var _ Handle = (*sqlx.DB)(nil)

// NewSQLite opens the store. The process shares a single connection, which
// also keeps ":memory:" databases alive across calls.
func NewSQLite(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", cfg.Path, err)
	}
	return db, nil
}

func dsn(cfg *Config) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout))
	}
	if cfg.Path == ":memory:" {
		return "file::memory:?" + q.Encode()
	}
	return "file:" + cfg.Path + "?" + q.Encode()
}

// WithTx runs fn inside a transaction and commits when fn succeeds.
func WithTx(ctx context.Context, db Handle, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

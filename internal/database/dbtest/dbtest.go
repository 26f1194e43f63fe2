// Package dbtest opens throwaway migrated stores for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-backoffice/internal/database"
	"github.com/jmoiron/sqlx"
)

// New returns an in-memory store with every table created. It is closed when
// the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLite(&database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT count(*) FROM "+table); err != nil {
		t.Fatal(err)
	}
	return n
}

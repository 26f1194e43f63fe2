package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const AdminUsername = "admin"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		role TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT,
		stock INTEGER DEFAULT 0,
		price REAL NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		items TEXT,
		items_count INTEGER DEFAULT 0,
		total_amount REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		address TEXT,
		notes TEXT,
		total_purchases INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		position TEXT,
		department TEXT,
		status TEXT DEFAULT 'Active',
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		address TEXT,
		hire_date TEXT,
		salary REAL,
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		contact_person TEXT,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		status TEXT DEFAULT 'Active',
		address TEXT,
		payment_terms TEXT,
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS financial_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		amount REAL NOT NULL,
		description TEXT
	)`,
}

// Migrate creates any missing table. Existing tables are left untouched.
func Migrate(ctx context.Context, db Handle) error {
	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}

// SeedAdmin inserts the default administrator unless a user named admin
// already exists. It reports whether a row was inserted.
func SeedAdmin(ctx context.Context, db Handle, passwordHash, email string) (bool, error) {
	var id int64
	err := db.GetContext(ctx, &id, `SELECT id FROM users WHERE username = ? LIMIT 1`, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	err = WithTx(ctx, db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password, email, role) VALUES (?, ?, ?, ?)`,
			AdminUsername, passwordHash, email, "admin")
		return err
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

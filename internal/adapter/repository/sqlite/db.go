package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		position INTEGER NOT NULL,
		number   INTEGER NOT NULL PRIMARY KEY,
		holder   TEXT    NOT NULL,
		balance  TEXT    NOT NULL
	)
`

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens the SQLite database file at path and ensures the schema exists
func NewDB(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

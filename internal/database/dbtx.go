package database

import (
	"context"
	"database/sql"
)

// DBTX defines the database operations needed by repositories.
// *DB satisfies it; tests can wrap a sqlmock connection with NewWithDialect.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetDialect() Dialect
}

// NewWithDialect wraps an already opened connection
func NewWithDialect(conn *sql.DB, dialect Dialect) *DB {
	return &DB{DB: conn, Dialect: dialect}
}

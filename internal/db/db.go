// Package db is a small adapter over database/sql that lets the snapshot
// store run on SQLite (modernc.org/sqlite, no CGO) or PostgreSQL (lib/pq)
// with the same code. SQL differences live in Dialect.
package db

import (
	"context"
	"database/sql"
)

// DB is the connection surface the store depends on. Every call takes a
// context so a cancelled command stops at the next statement.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) Row
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is an open transaction.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	PrepareContext(ctx context.Context, query string) (Stmt, error)
	Commit() error
	Rollback() error
}

// Stmt is a prepared statement. *sql.Stmt satisfies it.
type Stmt interface {
	ExecContext(ctx context.Context, args ...any) (Result, error)
	Close() error
}

// Rows iterates a result set. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Row is a single-row result. *sql.Row satisfies it.
type Row interface {
	Scan(dest ...any) error
}

// Result summarises an Exec.
type Result = sql.Result

// Config describes how to open a database.
type Config struct {
	Type DatabaseType

	// Path is the SQLite file path (or ":memory:").
	Path string

	// DSN is the PostgreSQL connection string.
	DSN string

	// EnableWAL turns on SQLite write-ahead logging for file databases.
	EnableWAL bool

	// Pool settings, applied when positive.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
}

// DefaultConfig returns a SQLite configuration for path.
func DefaultConfig(path string) Config {
	return Config{
		Type:      DatabaseSQLite,
		Path:      path,
		EnableWAL: true,
	}
}

// PostgresConfig returns a PostgreSQL configuration for dsn.
func PostgresConfig(dsn string) Config {
	return Config{
		Type:            DatabasePostgres,
		DSN:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 300,
	}
}

// Dialect returns the SQL dialect matching the configured type.
func (c Config) Dialect() Dialect {
	return GetDialect(c.Type)
}

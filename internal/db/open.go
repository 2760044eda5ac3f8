package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Open opens a database connection using the configuration. ctx bounds the
// connection setup only.
func Open(ctx context.Context, cfg Config) (DB, error) {
	switch cfg.Type {
	case DatabasePostgres:
		return openPostgres(ctx, cfg)
	case DatabaseSQLite, "":
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

// openSQLite opens a SQLite database with the modernc.org/sqlite driver,
// creating the parent directory when needed.
func openSQLite(ctx context.Context, cfg Config) (DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite requires a database path")
	}
	memory := cfg.Path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		// Every pooled connection would get its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}

	for _, stmt := range (&SQLiteDialect{}).InitStatements() {
		if strings.Contains(stmt, "journal_mode=WAL") && (memory || !cfg.EnableWAL) {
			continue
		}
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("running %q: %w", stmt, err)
		}
	}

	return WrapSQL(sqlDB), nil
}

// openPostgres opens a PostgreSQL connection with lib/pq.
func openPostgres(ctx context.Context, cfg Config) (DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres requires DSN in config")
	}

	sqlDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return WrapSQL(sqlDB), nil
}

package db

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements the Dialect interface for SQLite.
type SQLiteDialect struct{}

// Verify interface compliance at compile time.
var _ Dialect = (*SQLiteDialect)(nil)

func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (d *SQLiteDialect) InsertSQL(table string, columns []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), d.Placeholders(len(columns)))
}

func (d *SQLiteDialect) CreateTableSQL(table string, columns []ColumnDef) string {
	defs := columnDefs(columns, "INTEGER PRIMARY KEY AUTOINCREMENT", d.mapColumnType)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		table, strings.Join(defs, ",\n    "))
}

func (d *SQLiteDialect) mapColumnType(ct ColumnType) string {
	if ct == ColTypeInteger {
		return "INTEGER"
	}
	return "TEXT"
}

func (d *SQLiteDialect) CreateIndexSQL(table, indexName string, columns []string, unique bool) string {
	uniqueStr := ""
	if unique {
		uniqueStr = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		uniqueStr, indexName, table, strings.Join(columns, ", "))
}

func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
}

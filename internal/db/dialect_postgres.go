package db

import (
	"fmt"
	"strings"
)

// PostgresDialect implements the Dialect interface for PostgreSQL.
type PostgresDialect struct{}

// Verify interface compliance at compile time.
var _ Dialect = (*PostgresDialect)(nil)

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (d *PostgresDialect) Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = d.Placeholder(i + 1)
	}
	return strings.Join(placeholders, ", ")
}

func (d *PostgresDialect) InsertSQL(table string, columns []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), d.Placeholders(len(columns)))
}

func (d *PostgresDialect) CreateTableSQL(table string, columns []ColumnDef) string {
	defs := columnDefs(columns, "SERIAL PRIMARY KEY", d.mapColumnType)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		table, strings.Join(defs, ",\n    "))
}

func (d *PostgresDialect) mapColumnType(ct ColumnType) string {
	if ct == ColTypeInteger {
		return "INTEGER"
	}
	return "TEXT"
}

func (d *PostgresDialect) CreateIndexSQL(table, indexName string, columns []string, unique bool) string {
	uniqueStr := ""
	if unique {
		uniqueStr = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		uniqueStr, indexName, table, strings.Join(columns, ", "))
}

func (d *PostgresDialect) InitStatements() []string {
	// Configuration is connection-level for PostgreSQL
	return nil
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite", GetDialect(DatabaseSQLite).Name())
	assert.Equal(t, "postgres", GetDialect(DatabasePostgres).Name())
	assert.Equal(t, "sqlite", GetDialect("").Name())
	assert.Equal(t, "postgres", PostgresConfig("postgres://x").Dialect().Name())
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		dialect Dialect
		n       int
		want    string
	}{
		{&SQLiteDialect{}, 0, ""},
		{&SQLiteDialect{}, 1, "?"},
		{&SQLiteDialect{}, 3, "?, ?, ?"},
		{&PostgresDialect{}, 0, ""},
		{&PostgresDialect{}, 1, "$1"},
		{&PostgresDialect{}, 3, "$1, $2, $3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dialect.Placeholders(tt.n), "%s %d", tt.dialect.Name(), tt.n)
	}
	assert.Equal(t, "?", (&SQLiteDialect{}).Placeholder(4))
	assert.Equal(t, "$4", (&PostgresDialect{}).Placeholder(4))
}

func TestInsertSQL(t *testing.T) {
	cols := []string{"name", "path", "line"}

	assert.Equal(t, "INSERT INTO tags (name, path, line) VALUES (?, ?, ?)",
		(&SQLiteDialect{}).InsertSQL("tags", cols))
	assert.Equal(t, "INSERT INTO tags (name, path, line) VALUES ($1, $2, $3)",
		(&PostgresDialect{}).InsertSQL("tags", cols))
}

func TestCreateTableSQL(t *testing.T) {
	columns := []ColumnDef{
		{Name: "id", Type: ColTypeAutoIncrement},
		{Name: "name", Type: ColTypeText},
		{Name: "line", Type: ColTypeInteger, Nullable: true},
		{Name: "key", Type: ColTypeText, PrimaryKey: true},
	}

	sqlite := (&SQLiteDialect{}).CreateTableSQL("tags", columns)
	assert.Contains(t, sqlite, "CREATE TABLE IF NOT EXISTS tags")
	assert.Contains(t, sqlite, "id INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, sqlite, "name TEXT NOT NULL")
	assert.Contains(t, sqlite, "line INTEGER,")
	assert.Contains(t, sqlite, "key TEXT PRIMARY KEY")

	pg := (&PostgresDialect{}).CreateTableSQL("tags", columns)
	assert.Contains(t, pg, "id SERIAL PRIMARY KEY")
	assert.Contains(t, pg, "name TEXT NOT NULL")
}

func TestCreateIndexSQL(t *testing.T) {
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS idx_tags_name ON tags (name)",
		(&SQLiteDialect{}).CreateIndexSQL("tags", "idx_tags_name", []string{"name"}, false))
	assert.Equal(t, "CREATE UNIQUE INDEX IF NOT EXISTS idx_u ON tags (name, path)",
		(&PostgresDialect{}).CreateIndexSQL("tags", "idx_u", []string{"name", "path"}, true))
}

func TestInitStatements(t *testing.T) {
	assert.Contains(t, (&SQLiteDialect{}).InitStatements(), "PRAGMA journal_mode=WAL")
	assert.Empty(t, (&PostgresDialect{}).InitStatements())
}

func TestColumnTypeString(t *testing.T) {
	assert.Equal(t, "INTEGER", ColTypeInteger.String())
	assert.Equal(t, "TEXT", ColTypeText.String())
	assert.Equal(t, "AUTOINCREMENT", ColTypeAutoIncrement.String())
	assert.Equal(t, "UNKNOWN", ColumnType(99).String())
}

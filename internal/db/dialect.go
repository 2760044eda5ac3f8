package db

// Dialect abstracts SQL syntax differences between database engines.
type Dialect interface {
	// Name returns the dialect name ("sqlite" or "postgres").
	Name() string

	// Placeholder returns the parameter placeholder for the given index (1-based).
	// SQLite uses "?", PostgreSQL uses "$1", "$2", etc.
	Placeholder(index int) string

	// Placeholders returns n placeholders joined by ", ".
	Placeholders(n int) string

	// InsertSQL generates a plain INSERT for the given columns.
	InsertSQL(table string, columns []string) string

	// CreateTableSQL generates a CREATE TABLE IF NOT EXISTS statement.
	CreateTableSQL(table string, columns []ColumnDef) string

	// CreateIndexSQL generates a CREATE INDEX IF NOT EXISTS statement.
	CreateIndexSQL(table, indexName string, columns []string, unique bool) string

	// InitStatements returns statements run right after connecting.
	InitStatements() []string
}

// ColumnDef defines a column for table creation.
type ColumnDef struct {
	Name       string
	Type       ColumnType
	Nullable   bool
	PrimaryKey bool
}

// ColumnType represents abstract column types that map to database-specific types.
type ColumnType int

const (
	ColTypeInteger ColumnType = iota
	ColTypeText
	ColTypeAutoIncrement // Auto-incrementing primary key
)

// String returns the string representation of the column type.
func (ct ColumnType) String() string {
	switch ct {
	case ColTypeInteger:
		return "INTEGER"
	case ColTypeText:
		return "TEXT"
	case ColTypeAutoIncrement:
		return "AUTOINCREMENT"
	default:
		return "UNKNOWN"
	}
}

// GetDialect returns the appropriate dialect for the given database type.
func GetDialect(dbType DatabaseType) Dialect {
	if dbType == DatabasePostgres {
		return &PostgresDialect{}
	}
	return &SQLiteDialect{}
}

// DatabaseType identifies the database engine.
type DatabaseType string

const (
	// DatabaseSQLite is the SQLite database engine.
	DatabaseSQLite DatabaseType = "sqlite"

	// DatabasePostgres is the PostgreSQL database engine.
	DatabasePostgres DatabaseType = "postgres"
)

// columnDefs renders column definitions with the dialect's type mapping.
func columnDefs(columns []ColumnDef, autoPK string, mapType func(ColumnType) string) []string {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.Type == ColTypeAutoIncrement {
			defs = append(defs, col.Name+" "+autoPK)
			continue
		}
		def := col.Name + " " + mapType(col.Type)
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		} else if !col.Nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	return defs
}

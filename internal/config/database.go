package config

import (
	"fmt"
	"os"
	"strings"

	"tagnav/internal/db"
)

// DefaultDatabasePath is where `tagnav export` writes a SQLite snapshot.
const DefaultDatabasePath = ".tagnav/tags.db"

// DatabaseConfig selects the export target for candidate snapshots.
type DatabaseConfig struct {
	// Type is the database type (sqlite, postgres)
	Type db.DatabaseType

	// Path is the SQLite database file path
	Path string

	// DSN is the PostgreSQL connection string
	DSN string
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables:
//   - TAGNAV_DB_TYPE: "sqlite" or "postgres"
//   - TAGNAV_DB_DSN: connection string for PostgreSQL
//   - TAGNAV_DB_PATH: database file path for SQLite
//
// Without any of them the snapshot goes to SQLite at DefaultDatabasePath.
func LoadDatabaseConfigFromEnv() DatabaseConfig {
	cfg := DatabaseConfig{
		Type: db.DatabaseSQLite,
		Path: DefaultDatabasePath,
	}

	if dbType := os.Getenv("TAGNAV_DB_TYPE"); dbType != "" {
		switch strings.ToLower(dbType) {
		case "postgres", "postgresql":
			cfg.Type = db.DatabasePostgres
		case "sqlite", "sqlite3":
			cfg.Type = db.DatabaseSQLite
		default:
			fmt.Fprintf(os.Stderr, "Warning: Unknown database type %q, using SQLite\n", dbType)
		}
	}

	if dsn := os.Getenv("TAGNAV_DB_DSN"); dsn != "" {
		cfg.DSN = dsn

		if os.Getenv("TAGNAV_DB_TYPE") == "" && isPostgresDSN(dsn) {
			cfg.Type = db.DatabasePostgres
		}
	}

	if path := os.Getenv("TAGNAV_DB_PATH"); path != "" {
		cfg.Path = path
	}

	return cfg
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// ToDBConfig converts DatabaseConfig to db.Config for opening a database.
func (c DatabaseConfig) ToDBConfig() db.Config {
	if c.Type == db.DatabasePostgres {
		return db.PostgresConfig(c.DSN)
	}
	path := c.Path
	if path == "" {
		path = DefaultDatabasePath
	}
	return db.DefaultConfig(path)
}

// String returns a human-readable description with the DSN password masked.
func (c DatabaseConfig) String() string {
	switch c.Type {
	case db.DatabasePostgres:
		return fmt.Sprintf("PostgreSQL (%s)", maskDSN(c.DSN))
	default:
		return fmt.Sprintf("SQLite (%s)", c.Path)
	}
}

func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	userinfo := dsn[:at]
	scheme := ""
	if i := strings.Index(userinfo, "://"); i >= 0 {
		scheme, userinfo = userinfo[:i+3], userinfo[i+3:]
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return dsn
	}
	return scheme + user + ":***" + dsn[at:]
}

// Package store writes collected tag candidates to a SQL table so tools
// outside tagnav can query a snapshot. The collector never reads from it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"tagnav/internal/db"
	"tagnav/internal/tags"
)

const table = "tags"

var columns = []db.ColumnDef{
	{Name: "id", Type: db.ColTypeAutoIncrement},
	{Name: "name", Type: db.ColTypeText},
	{Name: "kind", Type: db.ColTypeText, Nullable: true},
	{Name: "path", Type: db.ColTypeText},
	{Name: "line", Type: db.ColTypeText, Nullable: true},
	{Name: "pattern", Type: db.ColTypeText, Nullable: true},
	{Name: "scope", Type: db.ColTypeText, Nullable: true},
	{Name: "tagfile", Type: db.ColTypeText, Nullable: true},
}

var insertColumns = []string{"name", "kind", "path", "line", "pattern", "scope", "tagfile"}

// Store is a tags table behind a db.DB.
type Store struct {
	adapter db.DB
	dialect db.Dialect
}

// Open opens the database described by cfg and ensures the schema exists.
func Open(ctx context.Context, cfg db.Config) (*Store, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s, err := New(ctx, database, cfg.Dialect())
	if err != nil {
		database.Close()
		return nil, err
	}
	return s, nil
}

// ErrNoSnapshot is returned by OpenExisting when the SQLite file is missing.
var ErrNoSnapshot = errors.New("no tag snapshot")

// OpenExisting is Open for readers: a missing SQLite file is reported as
// ErrNoSnapshot rather than created empty.
func OpenExisting(ctx context.Context, cfg db.Config) (*Store, error) {
	if cfg.Type != db.DatabasePostgres {
		if _, err := os.Stat(cfg.Path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s - run 'tagnav export' first", ErrNoSnapshot, cfg.Path)
		}
	}
	return Open(ctx, cfg)
}

// New wraps an open database and ensures the schema exists.
func New(ctx context.Context, database db.DB, dialect db.Dialect) (*Store, error) {
	s := &Store{adapter: database, dialect: dialect}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	stmts := []string{
		s.dialect.CreateTableSQL(table, columns),
		s.dialect.CreateIndexSQL(table, "idx_tags_name", []string{"name"}, false),
		s.dialect.CreateIndexSQL(table, "idx_tags_path", []string{"path"}, false),
	}
	for _, stmt := range stmts {
		if _, err := s.adapter.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.adapter.Close()
}

// Replace swaps the stored snapshot for candidates in one transaction and
// returns the number of rows written.
func (s *Store) Replace(ctx context.Context, candidates []tags.Candidate) (int, error) {
	tx, err := s.adapter.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("clearing tags: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.dialect.InsertSQL(table, insertColumns))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		_, err := stmt.ExecContext(ctx,
			c.Word, nullString(c.Kind), c.Path, nullString(c.Line),
			nullString(c.Pattern), nullString(c.Scope), nullString(c.TagFile),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", c.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(candidates), nil
}

// FindByName returns stored candidates with exactly this name, optionally
// restricted to kind, ordered by path then insertion.
func (s *Store) FindByName(ctx context.Context, name, kind string, limit int) ([]tags.Candidate, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT name, kind, path, line, pattern, scope, tagfile
		FROM %s WHERE name = %s`, table, s.dialect.Placeholder(1))
	args := []any{name}
	next := 2
	if kind != "" {
		query += fmt.Sprintf(" AND kind = %s", s.dialect.Placeholder(next))
		args = append(args, kind)
		next++
	}
	query += fmt.Sprintf(" ORDER BY name, path, id LIMIT %s", s.dialect.Placeholder(next))
	args = append(args, limit)

	rows, err := s.adapter.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var found []tags.Candidate
	for rows.Next() {
		var rec tags.Record
		var kindStr, lineStr, patternStr, scopeStr, tagFile sql.NullString
		if err := rows.Scan(&rec.Name, &kindStr, &rec.File, &lineStr, &patternStr, &scopeStr, &tagFile); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		rec.Kind = kindStr.String
		rec.Pattern = patternStr.String
		rec.Scope = scopeStr.String
		rec.Line = lineStr.String
		found = append(found, tags.NewCandidate(rec, tagFile.String))
	}
	return found, rows.Err()
}

// Stats returns the number of stored tags and distinct tags files.
func (s *Store) Stats(ctx context.Context) (tagCount, fileCount int, err error) {
	if err := s.adapter.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&tagCount); err != nil {
		return 0, 0, err
	}
	if err := s.adapter.QueryRowContext(ctx, "SELECT COUNT(DISTINCT tagfile) FROM "+table).Scan(&fileCount); err != nil {
		return 0, 0, err
	}
	return tagCount, fileCount, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

package db

import (
	"context"
	"database/sql"
)

// sqlDB adapts *sql.DB to DB. Only methods whose signatures name
// database/sql types need forwarding.
type sqlDB struct {
	*sql.DB
}

// sqlTx adapts *sql.Tx to Tx.
type sqlTx struct {
	*sql.Tx
}

var (
	_ DB   = sqlDB{}
	_ Tx   = sqlTx{}
	_ Stmt = (*sql.Stmt)(nil)
	_ Rows = (*sql.Rows)(nil)
	_ Row  = (*sql.Row)(nil)
)

// WrapSQL adapts a *sql.DB from either driver to the DB interface.
func WrapSQL(db *sql.DB) DB {
	return sqlDB{db}
}

func (w sqlDB) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := w.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (w sqlDB) QueryRowContext(ctx context.Context, query string, args ...any) Row {
	return w.DB.QueryRowContext(ctx, query, args...)
}

func (w sqlDB) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sqlTx{tx}, nil
}

func (t sqlTx) PrepareContext(ctx context.Context, query string) (Stmt, error) {
	stmt, err := t.Tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

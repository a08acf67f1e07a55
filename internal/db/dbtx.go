package db

import (
	"context"
	"database/sql"
)

// DBTX is what plan repositories need from a connection. Both a pooled
// *sql.DB and a *sql.Tx handed out by a UnitOfWork satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

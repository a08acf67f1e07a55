package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/mindweave/internal/db"
)

// FailOnNthExecUoW runs fn in a real transaction but makes the FailOn-th
// write (counting from 1) return Err. Reads are never counted. Any error
// from fn rolls the transaction back.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting plan transaction: %w", err)
	}

	if err := fn(ctx, &writeCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// writeCounter is used by a single goroutine inside one transaction.
type writeCounter struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (w *writeCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	w.writes++
	if w.writes == w.failOn {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}

package db

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"parking-gateway/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is an exclusively-owned transactional connection. Commit or Rollback
// releases the underlying connection back to the pool exactly once; the
// first of the two wins and any later call is a no-op.
type Tx interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type managedTx struct {
	tx       pgx.Tx
	logger   *slog.Logger
	finished atomic.Bool
}

func (t *managedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

func (t *managedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *managedTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, arguments...)
}

// Commit commits and releases the connection. A failed commit rolls the
// transaction back before the error is reported.
func (t *managedTx) Commit(ctx context.Context) error {
	if !t.finished.CompareAndSwap(false, true) {
		return pgx.ErrTxClosed
	}

	if err := t.tx.Commit(ctx); err != nil {
		if rbErr := t.tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.logger.Warn("rollback after failed commit failed", "error", rbErr.Error())
		}
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Rollback aborts the transaction and releases the connection. It never
// fails the caller: store-level rollback errors are logged and swallowed,
// and a Rollback after Commit is a no-op, so a deferred Rollback is safe on
// every exit path.
func (t *managedTx) Rollback(ctx context.Context) error {
	if !t.finished.CompareAndSwap(false, true) {
		return nil
	}

	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.logger.Warn("failed to rollback transaction", "error", err.Error())
	}
	return nil
}

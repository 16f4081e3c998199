package db

import (
	"context"
	"testing"

	"parking-gateway/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx implements pgx.Tx with call counters so tests can verify the
// release-once behavior of managedTx.
type fakeTx struct {
	commits     int
	rollbacks   int
	commitErr   error
	rollbackErr error
	execs       []string
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	return t.rollbackErr
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	t.execs = append(t.execs, sql)
	return &fakeRows{}, nil
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	t.execs = append(t.execs, sql)
	return fakeRow{}
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

func newManagedTx(inner *fakeTx) *managedTx {
	return &managedTx{tx: inner, logger: testLogger()}
}

func TestManagedTxCommitReleasesOnce(t *testing.T) {
	inner := &fakeTx{}
	tx := newManagedTx(inner)

	require.NoError(t, tx.Commit(context.Background()))
	assert.Equal(t, 1, inner.commits)
	assert.Equal(t, 0, inner.rollbacks)

	// Second commit hits the finished guard, not the store.
	err := tx.Commit(context.Background())
	assert.ErrorIs(t, err, pgx.ErrTxClosed)
	assert.Equal(t, 1, inner.commits)
}

func TestManagedTxRollbackAfterCommitIsNoop(t *testing.T) {
	inner := &fakeTx{}
	tx := newManagedTx(inner)

	require.NoError(t, tx.Commit(context.Background()))
	require.NoError(t, tx.Rollback(context.Background()))

	assert.Equal(t, 1, inner.commits)
	assert.Equal(t, 0, inner.rollbacks)
}

func TestManagedTxFailedCommitRollsBack(t *testing.T) {
	inner := &fakeTx{commitErr: errs.New("connection lost")}
	tx := newManagedTx(inner)

	err := tx.Commit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, inner.commitErr)
	assert.Equal(t, 1, inner.commits)
	assert.Equal(t, 1, inner.rollbacks)

	// The handle is finished either way.
	require.NoError(t, tx.Rollback(context.Background()))
	assert.Equal(t, 1, inner.rollbacks)
}

func TestManagedTxRollbackReleasesOnce(t *testing.T) {
	inner := &fakeTx{}
	tx := newManagedTx(inner)

	require.NoError(t, tx.Rollback(context.Background()))
	require.NoError(t, tx.Rollback(context.Background()))
	assert.Equal(t, 1, inner.rollbacks)

	err := tx.Commit(context.Background())
	assert.ErrorIs(t, err, pgx.ErrTxClosed)
	assert.Equal(t, 0, inner.commits)
}

func TestManagedTxRollbackSwallowsStoreError(t *testing.T) {
	inner := &fakeTx{rollbackErr: errs.New("already aborted")}
	tx := newManagedTx(inner)

	require.NoError(t, tx.Rollback(context.Background()))
	assert.Equal(t, 1, inner.rollbacks)
}

func TestManagedTxExecutesOnUnderlyingTx(t *testing.T) {
	inner := &fakeTx{}
	tx := newManagedTx(inner)

	_, err := tx.Exec(context.Background(), "INSERT INTO reservations")
	require.NoError(t, err)
	_ = tx.QueryRow(context.Background(), "SELECT 1")
	require.NoError(t, tx.Commit(context.Background()))

	assert.Equal(t, []string{"INSERT INTO reservations", "SELECT 1"}, inner.execs)
}

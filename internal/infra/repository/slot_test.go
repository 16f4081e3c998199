package repository

import (
	"context"
	"testing"

	"parking-gateway/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeExecutor returns canned results and records the statements it was
// given.
type fakeExecutor struct {
	execTag pgconn.CommandTag
	execErr error
	row     pgx.Row

	lastSQL  string
	lastArgs []any
}

func (e *fakeExecutor) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (e *fakeExecutor) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	e.lastSQL = sql
	e.lastArgs = args
	return e.row
}

func (e *fakeExecutor) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.lastSQL = sql
	e.lastArgs = args
	return e.execTag, e.execErr
}

func TestMarkUnavailableClaimsFreeSlot(t *testing.T) {
	ex := &fakeExecutor{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewSlotRepository()

	claimed, err := repo.MarkUnavailable(context.Background(), ex, 3)

	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Contains(t, ex.lastSQL, "AND is_available")
	assert.Equal(t, []any{int64(3)}, ex.lastArgs)
}

func TestMarkUnavailableLosesRace(t *testing.T) {
	ex := &fakeExecutor{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewSlotRepository()

	claimed, err := repo.MarkUnavailable(context.Background(), ex, 3)

	require.NoError(t, err)
	assert.False(t, claimed, "a slot already taken must not be claimed again")
}

func TestFindByIDMapsNoRowsToNotFound(t *testing.T) {
	ex := &fakeExecutor{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	repo := NewSlotRepository()

	_, err := repo.FindByID(context.Background(), ex, 99)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

package db

import (
	"context"
	"log/slog"
	"sync"

	"parking-gateway/internal/pkg/config"
	"parking-gateway/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotReady marks operations issued against a manager whose
// initialization ended in failure.
var ErrNotReady = errs.New("database manager is not ready")

type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pool is the slice of *pgxpool.Pool the manager depends on.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

// Executor is the statement surface shared by the manager and its
// transactions. Repositories accept it so the same query code runs inside
// and outside a transaction.
type Executor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Manager owns the process-wide connection pool and hides the bootstrap
// window from callers. Initialization runs once in the background; until it
// reaches a terminal state every operation is parked on a FIFO queue, then
// replayed in arrival order against the pool (Ready) or the recorded error
// (Failed). The states are terminal: once Ready or Failed, the manager
// never transitions again.
//
// Operations issued before Start also park on the queue; they only run once
// someone calls Start and initialization finishes. Callers that cannot rely
// on Start having been invoked should bound such calls with a context
// deadline, which abandons the wait without cancelling the queued work.
type Manager struct {
	logger *slog.Logger

	bootstrap func(ctx context.Context) error
	connect   func(ctx context.Context) (Pool, error)

	mu      sync.Mutex
	state   State
	pending []func()
	pool    Pool
	initErr error

	startOnce sync.Once
	done      chan struct{}
}

func NewManager(cfg config.DBConfig, logger *slog.Logger) *Manager {
	b := NewBootstrapper(cfg, logger)
	return newManager(
		b.EnsureDatabase,
		func(ctx context.Context) (Pool, error) { return newPool(ctx, cfg) },
		logger,
	)
}

func newManager(bootstrap func(ctx context.Context) error, connect func(ctx context.Context) (Pool, error), logger *slog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		bootstrap: bootstrap,
		connect:   connect,
		state:     StateUninitialized,
		done:      make(chan struct{}),
	}
}

func newPool(ctx context.Context, cfg config.DBConfig) (Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse pool config")
	}
	pc.MaxConns = cfg.PoolSize

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create connection pool")
	}
	return pool, nil
}

// Start launches initialization in the background. Subsequent calls are
// no-ops; the manager never re-initializes.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.state = StateInitializing
		m.mu.Unlock()
		go m.initialize(ctx)
	})
}

func (m *Manager) initialize(ctx context.Context) {
	err := m.bootstrap(ctx)
	if err != nil {
		m.logger.Error("database bootstrap failed", "error", err.Error())
	}

	// The pool is constructed even after a failed bootstrap so the manager
	// keeps a stable backing; the bootstrap error still wins as the
	// recorded failure.
	pool, poolErr := m.connect(ctx)
	if err == nil && poolErr != nil {
		m.logger.Error("connection pool construction failed", "error", poolErr.Error())
		err = poolErr
	}

	m.finish(pool, err)
}

// finish records the initialization outcome, drains the pending queue in
// arrival order, and flips the state to a terminal value. Operations that
// arrive while the drain is running keep queueing and are consumed before
// the flip, so every queued operation executes before any post-terminal one.
func (m *Manager) finish(pool Pool, initErr error) {
	m.mu.Lock()
	m.pool = pool
	m.initErr = initErr

	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		for _, op := range batch {
			op()
		}
		m.mu.Lock()
	}

	if initErr != nil {
		m.state = StateFailed
	} else {
		m.state = StateReady
	}
	m.mu.Unlock()

	close(m.done)
	m.logger.Info("database manager initialized", "state", m.State().String())
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the recorded initialization error, if any.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initErr
}

// WaitReady blocks until the manager reaches a terminal state and returns
// the initialization error recorded there.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.done:
		return m.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) Close() {
	m.mu.Lock()
	pool := m.pool
	m.mu.Unlock()
	if pool != nil {
		pool.Close()
	}
}

// enqueue parks op until the drain runs it. Must be called with m.mu held;
// releases the lock before waiting. The op stays queued and still executes
// at drain time even when the caller's context expires first; only the wait
// is abandoned.
func (m *Manager) enqueue(ctx context.Context, op func()) error {
	ready := make(chan struct{})
	m.pending = append(m.pending, func() {
		op()
		close(ready)
	})
	m.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.mu.Lock()
	switch m.state {
	case StateReady:
		pool := m.pool
		m.mu.Unlock()
		return pool.Query(ctx, sql, args...)
	case StateFailed:
		err := m.initErr
		m.mu.Unlock()
		return nil, errs.Mark(err, ErrNotReady)
	}

	var (
		rows pgx.Rows
		err  error
	)
	if waitErr := m.enqueue(ctx, func() {
		if m.initErr != nil {
			err = errs.Mark(m.initErr, ErrNotReady)
			return
		}
		rows, err = m.pool.Query(ctx, sql, args...)
	}); waitErr != nil {
		return nil, waitErr
	}
	return rows, err
}

func (m *Manager) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	switch m.state {
	case StateReady:
		pool := m.pool
		m.mu.Unlock()
		return pool.QueryRow(ctx, sql, args...)
	case StateFailed:
		err := m.initErr
		m.mu.Unlock()
		return errRow{err: errs.Mark(err, ErrNotReady)}
	}

	var row pgx.Row
	if waitErr := m.enqueue(ctx, func() {
		if m.initErr != nil {
			row = errRow{err: errs.Mark(m.initErr, ErrNotReady)}
			return
		}
		row = m.pool.QueryRow(ctx, sql, args...)
	}); waitErr != nil {
		return errRow{err: waitErr}
	}
	return row
}

func (m *Manager) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	switch m.state {
	case StateReady:
		pool := m.pool
		m.mu.Unlock()
		return pool.Exec(ctx, sql, arguments...)
	case StateFailed:
		err := m.initErr
		m.mu.Unlock()
		return pgconn.CommandTag{}, errs.Mark(err, ErrNotReady)
	}

	var (
		tag pgconn.CommandTag
		err error
	)
	if waitErr := m.enqueue(ctx, func() {
		if m.initErr != nil {
			err = errs.Mark(m.initErr, ErrNotReady)
			return
		}
		tag, err = m.pool.Exec(ctx, sql, arguments...)
	}); waitErr != nil {
		return pgconn.CommandTag{}, waitErr
	}
	return tag, err
}

// Begin starts a transaction on one exclusively-held pooled connection. The
// returned handle owns the connection until Commit or Rollback releases it
// back to the pool.
func (m *Manager) Begin(ctx context.Context) (Tx, error) {
	m.mu.Lock()
	switch m.state {
	case StateReady:
		pool := m.pool
		m.mu.Unlock()
		return m.beginOn(ctx, pool)
	case StateFailed:
		err := m.initErr
		m.mu.Unlock()
		return nil, errs.Mark(err, ErrNotReady)
	}

	var (
		tx  Tx
		err error
	)
	if waitErr := m.enqueue(ctx, func() {
		if m.initErr != nil {
			err = errs.Mark(m.initErr, ErrNotReady)
			return
		}
		tx, err = m.beginOn(ctx, m.pool)
	}); waitErr != nil {
		return nil, waitErr
	}
	return tx, err
}

func (m *Manager) beginOn(ctx context.Context, pool Pool) (Tx, error) {
	pgxTx, err := pool.Begin(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to begin transaction")
	}
	return &managedTx{tx: pgxTx, logger: m.logger}, nil
}

// Acquire hands out a raw pooled connection for advanced use. The caller
// must release it.
func (m *Manager) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	m.mu.Lock()
	switch m.state {
	case StateReady:
		pool := m.pool
		m.mu.Unlock()
		return pool.Acquire(ctx)
	case StateFailed:
		err := m.initErr
		m.mu.Unlock()
		return nil, errs.Mark(err, ErrNotReady)
	}

	var (
		conn *pgxpool.Conn
		err  error
	)
	if waitErr := m.enqueue(ctx, func() {
		if m.initErr != nil {
			err = errs.Mark(m.initErr, ErrNotReady)
			return
		}
		conn, err = m.pool.Acquire(ctx)
	}); waitErr != nil {
		return nil, waitErr
	}
	return conn, err
}

// errRow satisfies pgx.Row for operations that failed before reaching the
// pool.
type errRow struct {
	err error
}

func (r errRow) Scan(_ ...any) error {
	return r.err
}

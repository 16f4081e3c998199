package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"parking-gateway/internal/pkg/config"
	"parking-gateway/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

const pgErrCodeDuplicateDatabase = "42P04"

// bootstrapConn is the slice of *pgx.Conn the bootstrapper needs.
type bootstrapConn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Bootstrapper creates the target database and its schema when a connection
// probe shows the database is missing. A probe that succeeds is the fast
// path and leaves the server untouched.
type Bootstrapper struct {
	cfg    config.DBConfig
	logger *slog.Logger

	connect func(ctx context.Context, dsn string) (bootstrapConn, error)
}

func NewBootstrapper(cfg config.DBConfig, logger *slog.Logger) *Bootstrapper {
	return &Bootstrapper{
		cfg:    cfg,
		logger: logger,
		connect: func(ctx context.Context, dsn string) (bootstrapConn, error) {
			return pgx.Connect(ctx, dsn)
		},
	}
}

// EnsureDatabase probes the configured database and, if it is unreachable,
// creates it through the admin database and applies the embedded migration
// script as one multi-statement batch.
func (b *Bootstrapper) EnsureDatabase(ctx context.Context) error {
	probeErr := b.probe(ctx)
	if probeErr == nil {
		return nil
	}

	b.logger.Warn("database missing or inaccessible, attempting migration",
		"database", b.cfg.DBName, "error", probeErr.Error())

	admin, err := b.connect(ctx, b.cfg.BuildAdminDSN())
	if err != nil {
		return errs.Wrap(err, "failed to connect to admin database")
	}
	defer func() { _ = admin.Close(ctx) }()

	createStmt := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{b.cfg.DBName}.Sanitize())
	if _, err := admin.Exec(ctx, createStmt); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != pgErrCodeDuplicateDatabase {
			return errs.Wrap(err, "failed to create database")
		}
		// The database exists but the probe failed; schema may be partial,
		// so fall through and apply the script (statements are idempotent).
	}

	target, err := b.connect(ctx, b.cfg.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "failed to connect to created database")
	}
	defer func() { _ = target.Close(ctx) }()

	if _, err := target.Exec(ctx, schemaSQL); err != nil {
		return errs.Wrap(err, "failed to apply migration script")
	}

	b.logger.Info("executed migration script", "database", b.cfg.DBName)
	return nil
}

func (b *Bootstrapper) probe(ctx context.Context) error {
	conn, err := b.connect(ctx, b.cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()
	return conn.Ping(ctx)
}

package bootstrap

import (
	"context"
	"log/slog"

	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/pkg/config"
	"parking-gateway/internal/usecase"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDBManager,
		func(m *db.Manager) db.Executor { return m },
		func(m *db.Manager) usecase.TxBeginner { return m },
	),
)

// NewDBManager provides the process-wide pool manager. Initialization is
// launched in the background on startup so the HTTP surface comes up
// immediately; early requests park on the manager's queue until the pool is
// ready.
func NewDBManager(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *db.Manager {
	manager := db.NewManager(cfg.DB, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			manager.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			manager.Close()
			return nil
		},
	})

	return manager
}

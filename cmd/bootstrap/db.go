package bootstrap

import (
	"context"
	"log/slog"

	"slotbook/internal/infra/memstore"
	"slotbook/internal/infra/pgstore"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := pgstore.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// NewUnitOfWork picks the backing store from STORE_DRIVER. The postgres pool is only opened when selected.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := NewDB(lc, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres store", "host", cfg.DB.Host, "database", cfg.DB.DBName)
		return pgstore.NewUoW(pool), nil
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return memstore.NewUoW(memstore.New()), nil
	}
}

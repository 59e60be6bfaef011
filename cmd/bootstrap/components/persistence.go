package components

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/infra/export"
	"slotbook/internal/infra/filestore"
	"slotbook/internal/infra/revocation"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"go.uber.org/fx"
)

const redisDialTimeout = 5 * time.Second

// PersistenceModule provides the stores that live beside the unit of work.
var PersistenceModule = fx.Module("persistence",
	revocationModule,
	fileStoreModule,
	fx.Provide(
		fx.Annotate(
			export.NewExporter,
			fx.As(new(queries.BookingExporter)),
		),
	),
)

var revocationModule = fx.Module("persistence/revocation",
	fx.Provide(
		NewRevocationStore,
	),
)

var fileStoreModule = fx.Module("persistence/files",
	fx.Provide(
		NewFileStore,
		fx.Annotate(
			NewUploadDir,
			fx.ResultTags(`name:"uploadDir"`),
		),
	),
)

// NewRevocationStore shares logouts through redis when REDIS_ADDR is set; otherwise they are per-process.
func NewRevocationStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (usecase.RevocationStore, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set; token revocations are kept in memory")
		return revocation.NewMemoryStore(clk), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	client, err := revocation.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return revocation.NewRedisStore(client), nil
}

func NewFileStore(cfg config.Config, logger *slog.Logger) (commands.FileStore, error) {
	if cfg.Upload.CloudinaryEnabled() {
		logger.Info("uploads stored in cloudinary", "folder", cfg.Upload.CloudinaryDir)
		return filestore.NewCloudinaryStore(cfg.Upload)
	}
	logger.Info("uploads stored on local disk", "dir", cfg.Upload.Dir)
	return filestore.NewLocalStore(cfg.Upload), nil
}

// NewUploadDir is the directory the router serves under /uploads, empty when files live in cloudinary.
func NewUploadDir(cfg config.Config) string {
	if cfg.Upload.CloudinaryEnabled() {
		return ""
	}
	return cfg.Upload.Dir
}

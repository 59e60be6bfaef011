package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"slotbook/cmd/bootstrap"
	"slotbook/internal/infra/pgstore"
	"slotbook/internal/usecase/commands"
	"slotbook/migrations"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const oneShotTimeout = 5 * time.Minute

func init() {
	// Never expose debug output because of a missing setting.
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           slotbook
// @version         1.0
// @description     Appointment booking backend for small service businesses.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	root := &cobra.Command{
		Use:           "slotbook",
		Short:         "Appointment booking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), remindCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the notification scheduler",
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(bootstrap.Module)

			if err := app.Start(context.Background()); err != nil {
				return err
			}

			<-app.Done()

			if err := app.Stop(context.Background()); err != nil {
				// shutdown errors are reported but do not change the exit code
				slog.Error("failed to stop application", "error", err)
			}

			slog.Info("application stopped")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending postgres migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				pool   *pgxpool.Pool
				logger *slog.Logger
			)
			return runOnce(cmd.Context(),
				fx.Options(
					bootstrap.ConfigModule,
					bootstrap.LoggerModule,
					bootstrap.FxLogger,
					bootstrap.DBModule,
					fx.Populate(&pool, &logger),
				),
				func(ctx context.Context) error {
					applied, err := pgstore.Migrate(ctx, pool, migrations.Files)
					if err != nil {
						return err
					}
					logger.Info("migrations applied", "count", len(applied), "files", applied)
					return nil
				},
			)
		},
	}
}

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run one reminder scan and one dispatch pass, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				notifications commands.NotificationCommands
				logger        *slog.Logger
			)
			return runOnce(cmd.Context(),
				fx.Options(
					bootstrap.Core,
					fx.Populate(&notifications, &logger),
				),
				func(ctx context.Context) error {
					enqueued, err := notifications.EnqueueDueReminders(ctx)
					if err != nil {
						return err
					}
					report, err := notifications.DispatchPending(ctx)
					if err != nil {
						return err
					}
					logger.Info("reminder pass finished",
						"enqueued", enqueued, "sent", report.Sent,
						"retried", report.Retried, "failed", report.Failed)
					return nil
				},
			)
		},
	}
}

// runOnce starts an fx app, runs fn and stops the app again.
func runOnce(parent context.Context, opts fx.Option, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, oneShotTimeout)
	defer cancel()

	app := fx.New(opts)
	if err := app.Start(ctx); err != nil {
		return err
	}
	runErr := fn(ctx)
	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "error", err)
	}
	return runErr
}

package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/infra/scheduler"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(func(*scheduler.Scheduler) {}),
)

// NewScheduler runs the outbox dispatcher and the reminder scan in-process.
func NewScheduler(
	lc fx.Lifecycle,
	cfg config.Config,
	loc *time.Location,
	logger *slog.Logger,
	notifications commands.NotificationCommands,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger, loc)
	err := s.Register(
		scheduler.Task{
			Name: "notification-dispatch",
			Spec: cfg.Notify.DispatchSpec,
			Run: func(ctx context.Context) error {
				report, err := notifications.DispatchPending(ctx)
				if report != nil && report.Claimed > 0 {
					logger.Info("notifications dispatched",
						"claimed", report.Claimed, "sent", report.Sent,
						"retried", report.Retried, "failed", report.Failed)
				}
				return err
			},
		},
		scheduler.Task{
			Name: "reminder-scan",
			Spec: cfg.Notify.ReminderSpec,
			Run: func(ctx context.Context) error {
				n, err := notifications.EnqueueDueReminders(ctx)
				if n > 0 {
					logger.Info("reminders enqueued", "count", n)
				}
				return err
			},
		},
	)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
	return s, nil
}

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

// Task is one periodic unit of work. Errors are logged; the schedule keeps running.
type Task struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler runs tasks on cron specs; overlapping runs of the same task are skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(logger *slog.Logger, loc *time.Location) *Scheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) Register(tasks ...Task) error {
	for _, t := range tasks {
		task := t
		if _, err := s.cron.AddFunc(task.Spec, func() { s.run(task) }); err != nil {
			return errs.Wrap(err, "schedule "+task.Name)
		}
		s.logger.Info("task scheduled", "task", task.Name, "spec", task.Spec)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight runs and waits for them to return or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(t Task) {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := t.Run(ctx); err != nil {
		s.logger.Error("scheduled task failed", "task", t.Name, "error", err.Error())
		return
	}
	s.logger.Debug("scheduled task finished", "task", t.Name, "duration_ms", time.Since(start).Milliseconds())
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

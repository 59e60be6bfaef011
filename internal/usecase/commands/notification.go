package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/notification"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/usecase/shared"
)

// DispatchReport summarizes one dispatcher pass.
type DispatchReport struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Retried int `json:"retried"`
	Failed  int `json:"failed"`
}

type NotificationCommands interface {
	// DispatchPending delivers due outbox jobs. Delivery errors are recorded on the job, not returned.
	DispatchPending(ctx context.Context) (*DispatchReport, error)
	// EnqueueDueReminders stages one reminder per confirmed booking starting within the reminder window.
	EnqueueDueReminders(ctx context.Context) (int, error)
}

type NotificationSettings struct {
	BatchSize      int
	Lease          time.Duration
	Retry          notification.RetryPolicy
	Location       *time.Location
	ReminderWindow time.Duration
}

type notificationCommandsImpl struct {
	uow      shared.UnitOfWork
	sender   NotificationSender
	bookings BookingCommands
	clock    clock.Clock
	settings NotificationSettings
	outbox   outbox
}

func NewNotificationCommands(
	uow shared.UnitOfWork,
	sender NotificationSender,
	bookings BookingCommands,
	clk clock.Clock,
	settings NotificationSettings,
) NotificationCommands {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &notificationCommandsImpl{
		uow:      uow,
		sender:   sender,
		bookings: bookings,
		clock:    clk,
		settings: settings,
	}
}

func (n *notificationCommandsImpl) DispatchPending(ctx context.Context) (*DispatchReport, error) {
	var jobs []*notification.Job
	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Notifications().ClaimDue(ctx, n.clock.Now(), n.settings.Lease, n.settings.BatchSize)
		return shared.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}

	report := &DispatchReport{Claimed: len(jobs)}
	for _, job := range jobs {
		if ctx.Err() != nil {
			// leased jobs become due again once the lease runs out
			return report, ctx.Err()
		}
		n.deliver(ctx, job, report)
	}
	return report, nil
}

func (n *notificationCommandsImpl) deliver(ctx context.Context, job *notification.Job, report *DispatchReport) {
	sendErr := n.sender.Send(ctx, job)
	now := n.clock.Now()
	if sendErr == nil {
		job.MarkSent(now)
		report.Sent++
	} else {
		job.MarkFailed(sendErr, now, n.settings.Retry)
		if job.Status() == notification.StatusFailed {
			report.Failed++
			slog.Error("notification failed permanently",
				"job_id", job.ID(), "topic", job.Topic(), "attempts", job.Attempts(), "error", sendErr.Error())
		} else {
			report.Retried++
			slog.Warn("notification delivery failed, will retry",
				"job_id", job.ID(), "topic", job.Topic(), "attempts", job.Attempts(), "run_at", job.RunAt(), "error", sendErr.Error())
		}
	}

	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.StoreErr(tx.Notifications().UpdateJob(ctx, job))
	})
	if err != nil {
		slog.Error("failed to record notification outcome", "job_id", job.ID(), "error", err.Error())
		return
	}

	if sendErr == nil && job.Topic() == notification.TopicBookingCreated {
		if err = n.bookings.MarkConfirmationSent(ctx, job.BusinessID(), job.Payload().BookingID); err != nil {
			slog.Warn("failed to mark confirmation sent", "booking_id", job.Payload().BookingID, "error", err.Error())
		}
	}
}

func (n *notificationCommandsImpl) EnqueueDueReminders(ctx context.Context) (int, error) {
	now := n.clock.Now()
	loc := n.settings.Location
	from := now.In(loc).Format(booking.DateLayout)
	to := now.Add(n.settings.ReminderWindow).In(loc).Format(booking.DateLayout)

	var candidates []*booking.Booking
	err := n.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		candidates, err = tx.Bookings().ListAwaitingReminder(ctx, from, to)
		return shared.StoreErr(err)
	})
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, c := range booking.DueReminders(candidates, now, loc, n.settings.ReminderWindow) {
		ok, err := n.enqueueReminder(ctx, c)
		if err != nil {
			slog.Error("failed to enqueue reminder", "booking_id", c.ID(), "error", err.Error())
			continue
		}
		if ok {
			enqueued++
		}
	}
	return enqueued, nil
}

// enqueueReminder re-reads the booking under its business lock so a concurrent scan cannot double-send.
func (n *notificationCommandsImpl) enqueueReminder(ctx context.Context, candidate *booking.Booking) (bool, error) {
	enqueued := false
	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBusiness(ctx, candidate.BusinessID()); err != nil {
			return err
		}
		b, err := tx.Bookings().FindByID(ctx, candidate.ID())
		if err != nil {
			return shared.StoreErr(err)
		}
		now := n.clock.Now()
		if !b.ReminderDue(now, n.settings.Location, n.settings.ReminderWindow) {
			return nil
		}
		if err = n.outbox.stage(ctx, tx, b, now, outboxEntry{topic: notification.TopicAppointmentReminder}); err != nil {
			return err
		}
		b.MarkReminderSent(now)
		if err = tx.Bookings().Update(ctx, b); err != nil {
			return shared.StoreErr(err)
		}
		enqueued = true
		return nil
	})
	return enqueued, err
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/usecase/shared"
)

// outbox stages notification jobs inside the caller's unit of work. A job that cannot be
// built is logged and skipped; the booking change itself still commits.
type outbox struct {
	ownerAlerts bool
}

type outboxEntry struct {
	topic    notification.Topic
	toOwner  bool
	previous *booking.Slot
}

func (o outbox) stage(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time, entries ...outboxEntry) error {
	owner, err := tx.Users().FindByID(ctx, b.BusinessID())
	if err != nil {
		slog.Warn("skipping notifications: business not found", "booking_id", b.ID(), "error", err.Error())
		return nil
	}

	for _, e := range entries {
		recipient := b.Client().Email()
		if e.toOwner {
			if !o.wantsOwnerAlert(owner) {
				continue
			}
			recipient = owner.Email().Value()
		}

		job, jerr := notification.NewJob(b.BusinessID(), e.topic, recipient, payloadFor(owner, b, e.previous), now)
		if jerr != nil {
			slog.Warn("skipping notification", "booking_id", b.ID(), "topic", e.topic, "error", jerr.Error())
			continue
		}
		if err = tx.Notifications().CreateJob(ctx, job); err != nil {
			return shared.StoreErr(err)
		}
	}
	return nil
}

func (o outbox) wantsOwnerAlert(owner *user.Account) bool {
	return o.ownerAlerts && owner.IsActive() && owner.Settings().NotificationSettings.EmailNotifications
}

func payloadFor(owner *user.Account, b *booking.Booking, previous *booking.Slot) notification.Payload {
	p := notification.Payload{
		BookingID:    b.ID(),
		BusinessName: owner.Profile().BusinessName,
		ClientName:   b.Client().Name(),
		ClientEmail:  b.Client().Email(),
		ClientPhone:  b.Client().Phone(),
		ServiceName:  b.ServiceName(),
		Date:         b.Slot().Date(),
		Time:         b.Slot().Time(),
		Duration:     b.Slot().Duration(),
		TotalAmount:  b.TotalAmount(),
	}
	if reason := b.CancellationReason(); reason != nil {
		p.Reason = *reason
	}
	if previous != nil {
		p.PreviousDate = previous.Date()
		p.PreviousTime = previous.Time()
	}
	return p
}

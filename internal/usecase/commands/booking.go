package commands

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/notification"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// PublicBookingInput is what a client submits; service name, duration and price come from the catalog.
type PublicBookingInput struct {
	ServiceID   uuid.UUID
	ClientName  string
	ClientEmail string
	ClientPhone string
	Date        string
	Time        string
	Notes       string
}

type BookingCommands interface {
	CreatePublicBooking(ctx context.Context, in PublicBookingInput) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, businessID, bookingID uuid.UUID, status string) (*queries.BookingView, error)
	UploadPaymentProof(ctx context.Context, bookingID uuid.UUID, file Upload) (*queries.BookingView, error)
	VerifyPayment(ctx context.Context, businessID, bookingID uuid.UUID, verified bool) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, businessID, bookingID uuid.UUID, reason string) (*queries.BookingView, error)
	RescheduleBooking(ctx context.Context, businessID, bookingID uuid.UUID, date, clockTime string) (*queries.BookingView, error)
	MarkReminderSent(ctx context.Context, businessID, bookingID uuid.UUID) (*queries.BookingView, error)
	MarkConfirmationSent(ctx context.Context, businessID, bookingID uuid.UUID) error
}

type BookingSettings struct {
	Location    *time.Location
	OwnerAlerts bool
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	files    FileStore
	clock    clock.Clock
	services *booking.Services
	outbox   outbox
}

func NewBookingCommands(uow shared.UnitOfWork, files FileStore, clk clock.Clock, settings BookingSettings) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		files:    files,
		clock:    clk,
		services: &booking.Services{Clock: clk, Location: settings.Location},
		outbox:   outbox{ownerAlerts: settings.OwnerAlerts},
	}
}

func (uc *bookingCommandsImpl) CreatePublicBooking(ctx context.Context, in PublicBookingInput) (*queries.BookingView, error) {
	var b *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Services().FindByID(ctx, in.ServiceID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !svc.IsActive() {
			return errs.ErrNotFound
		}

		b, err = booking.NewBooking(uc.services, booking.NewParams{
			BusinessID:  svc.BusinessID(),
			ServiceID:   svc.ID(),
			ServiceName: svc.Name(),
			ClientName:  in.ClientName,
			ClientEmail: in.ClientEmail,
			ClientPhone: in.ClientPhone,
			Date:        in.Date,
			Time:        in.Time,
			Duration:    svc.Duration(),
			TotalAmount: svc.Price(),
			Notes:       in.Notes,
		})
		if err != nil {
			return errs.AsValidation(err)
		}
		return uc.insert(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(b), nil
}

// insert holds the business lock across the conflict scan and the write.
func (uc *bookingCommandsImpl) insert(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.LockBusiness(ctx, b.BusinessID()); err != nil {
		return err
	}
	sameDay, err := tx.Bookings().ListByBusinessAndDate(ctx, b.BusinessID(), b.Slot().Date())
	if err != nil {
		return shared.StoreErr(err)
	}
	if err = booking.EnsureSlotFree(b.Slot(), sameDay, uuid.Nil); err != nil {
		return err
	}
	if err = tx.Bookings().Create(ctx, b); err != nil {
		return shared.StoreErr(err)
	}
	return uc.outbox.stage(ctx, tx, b, uc.clock.Now(),
		outboxEntry{topic: notification.TopicBookingCreated},
		outboxEntry{topic: notification.TopicNewBookingAlert, toOwner: true},
	)
}

func (uc *bookingCommandsImpl) UpdateStatus(ctx context.Context, businessID, bookingID uuid.UUID, status string) (*queries.BookingView, error) {
	return uc.mutate(ctx, businessID, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		return b.UpdateStatus(booking.Status(status), uc.clock.Now())
	})
}

// UploadPaymentProof stores the file first; a failed store leaves the booking untouched.
func (uc *bookingCommandsImpl) UploadPaymentProof(ctx context.Context, bookingID uuid.UUID, file Upload) (*queries.BookingView, error) {
	var businessID uuid.UUID
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if b.Status().IsTerminal() {
			return errs.ErrInvalidTransition
		}
		businessID = b.BusinessID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	ref, err := uc.files.Save(ctx, "payment-proofs", file)
	if err != nil {
		return nil, errs.Wrap(err, "store payment proof")
	}

	return uc.mutate(ctx, businessID, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		return b.AttachPaymentProof(ref, uc.clock.Now())
	})
}

func (uc *bookingCommandsImpl) VerifyPayment(ctx context.Context, businessID, bookingID uuid.UUID, verified bool) (*queries.BookingView, error) {
	return uc.mutate(ctx, businessID, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		if err := b.VerifyPayment(verified, uc.clock.Now()); err != nil {
			return err
		}
		if !verified {
			return nil
		}
		return uc.outbox.stage(ctx, tx, b, uc.clock.Now(), outboxEntry{topic: notification.TopicPaymentVerified})
	})
}

func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, businessID, bookingID uuid.UUID, reason string) (*queries.BookingView, error) {
	return uc.mutate(ctx, businessID, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		wasCancelled := b.Status() == booking.StatusCancelled
		if err := b.Cancel(reason, uc.clock.Now()); err != nil {
			return err
		}
		if wasCancelled {
			return nil
		}
		return uc.outbox.stage(ctx, tx, b, uc.clock.Now(), outboxEntry{topic: notification.TopicBookingCancelled})
	})
}

func (uc *bookingCommandsImpl) RescheduleBooking(ctx context.Context, businessID, bookingID uuid.UUID, date, clockTime string) (*queries.BookingView, error) {
	return uc.mutate(ctx, businessID, bookingID, func(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
		if b.Status().IsTerminal() {
			return errs.ErrInvalidTransition
		}
		previous := b.Slot()
		next, err := previous.WithDateTime(date, clockTime)
		if err != nil {
			return err
		}
		sameDay, err := tx.Bookings().ListByBusinessAndDate(ctx, businessID, next.Date())
		if err != nil {
			return shared.StoreErr(err)
		}
		if err = booking.EnsureSlotFree(next, sameDay, b.ID()); err != nil {
			return err
		}
		if err = b.Reschedule(uc.services, next); err != nil {
			return err
		}
		return uc.outbox.stage(ctx, tx, b, uc.clock.Now(),
			outboxEntry{topic: notification.TopicBookingRescheduled, previous: &previous})
	})
}

func (uc *bookingCommandsImpl) MarkReminderSent(ctx context.Context, businessID, bookingID uuid.UUID) (*queries.BookingView, error) {
	return uc.mutate(ctx, businessID, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		b.MarkReminderSent(uc.clock.Now())
		return nil
	})
}

func (uc *bookingCommandsImpl) MarkConfirmationSent(ctx context.Context, businessID, bookingID uuid.UUID) error {
	_, err := uc.mutate(ctx, businessID, bookingID, func(_ context.Context, _ shared.Tx, b *booking.Booking) error {
		b.MarkConfirmationSent(uc.clock.Now())
		return nil
	})
	return err
}

// mutate loads a booking of the business under its lock, applies fn and saves the result.
func (uc *bookingCommandsImpl) mutate(
	ctx context.Context,
	businessID, bookingID uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, b *booking.Booking) error,
) (*queries.BookingView, error) {
	var view *queries.BookingView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBusiness(ctx, businessID); err != nil {
			return err
		}
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !b.BelongsTo(businessID) {
			return errs.ErrNotFound
		}
		if err = fn(ctx, tx, b); err != nil {
			return errs.AsValidation(err)
		}
		if err = tx.Bookings().Update(ctx, b); err != nil {
			return shared.StoreErr(err)
		}
		view = queries.NewBookingView(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

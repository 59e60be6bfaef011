package queries

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUnsupportedExportFormat = errs.New("format must be one of json, csv, pdf")

// ExportFile is a rendered export ready to be streamed as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportMeta struct {
	BusinessName string
	GeneratedAt  time.Time
}

// BookingExporter renders bookings in a named format; unknown formats wrap ErrUnsupportedExportFormat.
type BookingExporter interface {
	Export(format string, meta ExportMeta, bookings []*BookingView) (*ExportFile, error)
}

type BookingQueries interface {
	ListBookings(ctx context.Context, businessID uuid.UUID, f booking.Filter) ([]*BookingView, error)
	GetBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*BookingView, error)
	Stats(ctx context.Context, businessID uuid.UUID, startDate, endDate *string) (*booking.Stats, error)
	RemindersDue(ctx context.Context, businessID uuid.UUID) ([]*BookingView, error)
	Export(ctx context.Context, businessID uuid.UUID, f booking.Filter, format string) (*ExportFile, error)
}

type BookingQuerySettings struct {
	Location       *time.Location
	ReminderWindow time.Duration
}

type bookingQueriesImpl struct {
	uow      shared.UnitOfWork
	exporter BookingExporter
	clock    clock.Clock
	settings BookingQuerySettings
}

func NewBookingQueries(uow shared.UnitOfWork, exporter BookingExporter, clk clock.Clock, settings BookingQuerySettings) BookingQueries {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &bookingQueriesImpl{uow: uow, exporter: exporter, clock: clk, settings: settings}
}

func (q *bookingQueriesImpl) ListBookings(ctx context.Context, businessID uuid.UUID, f booking.Filter) ([]*BookingView, error) {
	bookings, err := loadBookings(ctx, q.uow, businessID)
	if err != nil {
		return nil, err
	}
	return NewBookingViews(booking.Apply(bookings, f)), nil
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, businessID, bookingID uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !b.BelongsTo(businessID) {
			return errs.ErrNotFound
		}
		view = NewBookingView(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Stats counts every booking when no range is given; bounds are inclusive calendar dates.
func (q *bookingQueriesImpl) Stats(ctx context.Context, businessID uuid.UUID, startDate, endDate *string) (*booking.Stats, error) {
	bookings, err := loadBookings(ctx, q.uow, businessID)
	if err != nil {
		return nil, err
	}
	st := booking.Summarize(booking.Apply(bookings, booking.Filter{StartDate: startDate, EndDate: endDate}))
	return &st, nil
}

func (q *bookingQueriesImpl) RemindersDue(ctx context.Context, businessID uuid.UUID) ([]*BookingView, error) {
	bookings, err := loadBookings(ctx, q.uow, businessID)
	if err != nil {
		return nil, err
	}
	due := booking.DueReminders(bookings, q.clock.Now(), q.settings.Location, q.settings.ReminderWindow)
	return NewBookingViews(due), nil
}

func (q *bookingQueriesImpl) Export(ctx context.Context, businessID uuid.UUID, f booking.Filter, format string) (*ExportFile, error) {
	var (
		bookings     []*booking.Booking
		businessName string
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		owner, err := tx.Users().FindByID(ctx, businessID)
		if err != nil {
			return shared.StoreErr(err)
		}
		businessName = owner.Profile().BusinessName
		bookings, err = tx.Bookings().ListByBusiness(ctx, businessID)
		return shared.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}

	file, err := q.exporter.Export(format, ExportMeta{
		BusinessName: businessName,
		GeneratedAt:  q.clock.Now().In(q.settings.Location),
	}, NewBookingViews(booking.Apply(bookings, f)))
	if err != nil {
		if errs.Is(err, ErrUnsupportedExportFormat) {
			return nil, errs.AsValidation(errs.Field("format", err))
		}
		return nil, errs.Wrap(err, "render export")
	}
	return file, nil
}

func loadBookings(ctx context.Context, uow shared.UnitOfWork, businessID uuid.UUID) ([]*booking.Booking, error) {
	var bookings []*booking.Booking
	err := uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		bookings, err = tx.Bookings().ListByBusiness(ctx, businessID)
		return shared.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

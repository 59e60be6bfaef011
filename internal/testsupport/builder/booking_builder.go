//go:build unit || e2e

package builder

import (
	"time"

	"slotbook/internal/domain/booking"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// DefaultNow is the fixed "current time" booking fixtures are relative to.
var DefaultNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	BusinessID  uuid.UUID
	ServiceID   uuid.UUID
	ServiceName string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Date        string
	Time        string
	Duration    int
	TotalAmount float64
	Notes       string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		BusinessID:  uuid.New(),
		ServiceID:   uuid.New(),
		ServiceName: "Haircut",
		ClientName:  "Alex Kim",
		ClientEmail: "alex@example.com",
		ClientPhone: "+15550101010",
		Date:        "2025-06-10",
		Time:        "10:00",
		Duration:    60,
		TotalAmount: 45,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Params() booking.NewParams {
	return booking.NewParams{
		BusinessID:  b.BusinessID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Date:        b.Date,
		Time:        b.Time,
		Duration:    b.Duration,
		TotalAmount: b.TotalAmount,
		Notes:       b.Notes,
	}
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return b.BuildDomainAt(DefaultNow)
}

func (b *BookingBuilder) BuildDomainAt(now time.Time) (*booking.Booking, error) {
	services := &booking.Services{Clock: clock.NewMockClock(now), Location: time.UTC}
	return booking.NewBooking(services, b.Params())
}

// BuildWithStatus rebuilds a stored booking in an arbitrary status.
func (b *BookingBuilder) BuildWithStatus(status booking.Status) *booking.Booking {
	return booking.ReconstructBooking(booking.Snapshot{
		ID:          uuid.New(),
		BusinessID:  b.BusinessID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Date:        b.Date,
		Time:        b.Time,
		Duration:    b.Duration,
		TotalAmount: b.TotalAmount,
		Notes:       b.Notes,
		Status:      status,
		CreatedAt:   DefaultNow,
		UpdatedAt:   DefaultNow,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildWithStatus(booking.StatusPendingPayment))
}

func (b *BookingBuilder) BuildPublicDTO() reqdto.CreatePublicBookingRequest {
	return reqdto.CreatePublicBookingRequest{
		ServiceID:   b.ServiceID,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Date:        b.Date,
		Time:        b.Time,
		Notes:       b.Notes,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithBusinessID(id uuid.UUID) *BookingBuilder {
	b.BusinessID = id
	return b
}

func (b *BookingBuilder) WithServiceID(id uuid.UUID) *BookingBuilder {
	b.ServiceID = id
	return b
}

func (b *BookingBuilder) At(date, clock string) *BookingBuilder {
	b.Date = date
	b.Time = clock
	return b
}

func (b *BookingBuilder) WithDuration(minutes int) *BookingBuilder {
	b.Duration = minutes
	return b
}

func (b *BookingBuilder) WithClient(name, email, phone string) *BookingBuilder {
	b.ClientName = name
	b.ClientEmail = email
	b.ClientPhone = phone
	return b
}

func (b *BookingBuilder) WithAmount(amount float64) *BookingBuilder {
	b.TotalAmount = amount
	return b
}

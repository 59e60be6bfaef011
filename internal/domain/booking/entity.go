package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type Services struct {
	Clock    clock.Clock
	Location *time.Location
}

func (s *Services) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

type Booking struct {
	id                 uuid.UUID
	businessID         uuid.UUID
	serviceID          uuid.UUID
	serviceName        string
	client             Client
	slot               Slot
	totalAmount        float64
	notes              string
	status             Status
	paymentProof       *string
	paymentVerified    bool
	reminderSent       bool
	confirmationSent   bool
	cancellationReason *string
	createdAt          time.Time
	updatedAt          time.Time
}

type NewParams struct {
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

// NewBooking validates a booking request. A start in the past is rejected before any other
// field check. Conflicts with other bookings are checked by EnsureSlotFree.
func NewBooking(services *Services, p NewParams) (*Booking, error) {
	now := services.Clock.Now()
	if start, ok := StartTime(p.Date, p.Time, services.location()); ok && start.Before(now) {
		return nil, errs.ErrPastDate
	}

	if strings.TrimSpace(p.ServiceName) == "" {
		return nil, errs.Field("service_name", ErrMissingService)
	}
	client, err := NewClient(p.ClientName, p.ClientEmail, p.ClientPhone)
	if err != nil {
		return nil, err
	}
	slot, err := NewSlot(p.Date, p.Time, p.Duration)
	if err != nil {
		return nil, err
	}
	if p.TotalAmount <= 0 {
		return nil, errs.Field("total_amount", ErrInvalidAmount)
	}
	notes := strings.TrimSpace(p.Notes)
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return nil, errs.Field("notes", ErrNotesTooLong)
	}

	return &Booking{
		id:          uuid.New(),
		businessID:  p.BusinessID,
		serviceID:   p.ServiceID,
		serviceName: strings.TrimSpace(p.ServiceName),
		client:      client,
		slot:        slot,
		totalAmount: p.TotalAmount,
		notes:       notes,
		status:      StatusPendingPayment,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type Snapshot struct {
	ID                 uuid.UUID
	BusinessID         uuid.UUID
	ServiceID          uuid.UUID
	ServiceName        string
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	Date               string
	Time               string
	Duration           int
	TotalAmount        float64
	Notes              string
	Status             Status
	PaymentProof       *string
	PaymentVerified    bool
	ReminderSent       bool
	ConfirmationSent   bool
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructBooking rebuilds a stored booking without re-running creation rules.
func ReconstructBooking(s Snapshot) *Booking {
	start, _ := parseClock(s.Time)
	return &Booking{
		id:                 s.ID,
		businessID:         s.BusinessID,
		serviceID:          s.ServiceID,
		serviceName:        s.ServiceName,
		client:             Client{name: s.ClientName, email: s.ClientEmail, phone: s.ClientPhone},
		slot:               Slot{date: s.Date, start: start, duration: s.Duration},
		totalAmount:        s.TotalAmount,
		notes:              s.Notes,
		status:             s.Status,
		paymentProof:       s.PaymentProof,
		paymentVerified:    s.PaymentVerified,
		reminderSent:       s.ReminderSent,
		confirmationSent:   s.ConfirmationSent,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		BusinessID:         b.businessID,
		ServiceID:          b.serviceID,
		ServiceName:        b.serviceName,
		ClientName:         b.client.name,
		ClientEmail:        b.client.email,
		ClientPhone:        b.client.phone,
		Date:               b.slot.date,
		Time:               b.slot.Time(),
		Duration:           b.slot.duration,
		TotalAmount:        b.totalAmount,
		Notes:              b.notes,
		Status:             b.status,
		PaymentProof:       b.paymentProof,
		PaymentVerified:    b.paymentVerified,
		ReminderSent:       b.reminderSent,
		ConfirmationSent:   b.confirmationSent,
		CancellationReason: b.cancellationReason,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

func (b *Booking) UpdateStatus(next Status, now time.Time) error {
	if !next.IsValid() {
		return errs.ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return errs.ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// AttachPaymentProof moves any open booking back to verification.
func (b *Booking) AttachPaymentProof(ref string, now time.Time) error {
	if b.status.IsTerminal() {
		return errs.ErrInvalidTransition
	}
	r := ref
	b.paymentProof = &r
	b.status = StatusPendingVerification
	b.updatedAt = now
	return nil
}

func (b *Booking) VerifyPayment(verified bool, now time.Time) error {
	if b.status.IsTerminal() {
		return errs.ErrInvalidTransition
	}
	b.paymentVerified = verified
	if verified {
		b.status = StatusConfirmed
	} else {
		b.status = StatusPendingPayment
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.status == StatusCompleted {
		return errs.ErrAlreadyCompleted
	}
	if r := strings.TrimSpace(reason); r != "" || b.cancellationReason == nil {
		b.cancellationReason = &r
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// Reschedule moves the booking after the caller has checked next against other bookings.
func (b *Booking) Reschedule(services *Services, next Slot) error {
	if b.status.IsTerminal() {
		return errs.ErrInvalidTransition
	}
	now := services.Clock.Now()
	if next.StartsAt(services.location()).Before(now) {
		return errs.ErrPastDate
	}
	b.slot = next
	b.reminderSent = false
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkReminderSent(now time.Time) {
	if b.reminderSent {
		return
	}
	b.reminderSent = true
	b.updatedAt = now
}

func (b *Booking) MarkConfirmationSent(now time.Time) {
	if b.confirmationSent {
		return
	}
	b.confirmationSent = true
	b.updatedAt = now
}

// ReminderDue reports whether the appointment starts within [now, now+window).
func (b *Booking) ReminderDue(now time.Time, loc *time.Location, window time.Duration) bool {
	if b.status != StatusConfirmed || b.reminderSent {
		return false
	}
	start := b.slot.StartsAt(loc)
	return !start.Before(now) && start.Before(now.Add(window))
}

func (b *Booking) BelongsTo(businessID uuid.UUID) bool {
	return b.businessID == businessID
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) BusinessID() uuid.UUID       { return b.businessID }
func (b *Booking) ServiceID() uuid.UUID        { return b.serviceID }
func (b *Booking) ServiceName() string         { return b.serviceName }
func (b *Booking) Client() Client              { return b.client }
func (b *Booking) Slot() Slot                  { return b.slot }
func (b *Booking) TotalAmount() float64        { return b.totalAmount }
func (b *Booking) Notes() string               { return b.notes }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) PaymentProof() *string       { return b.paymentProof }
func (b *Booking) PaymentVerified() bool       { return b.paymentVerified }
func (b *Booking) ReminderSent() bool          { return b.reminderSent }
func (b *Booking) ConfirmationSent() bool      { return b.confirmationSent }
func (b *Booking) CancellationReason() *string { return b.cancellationReason }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

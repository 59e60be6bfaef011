package shared

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: write transaction; on error nothing is persisted
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-repository reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	// LockBusiness serializes writers of one business until the transaction ends.
	LockBusiness(ctx context.Context, businessID uuid.UUID) error
	Users() UserRepository
	Services() ServiceRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
}

type UserRepository interface {
	Create(ctx context.Context, acc *user.Account) error
	Update(ctx context.Context, acc *user.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.Account, error)
	FindActiveByEmail(ctx context.Context, email string) (*user.Account, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *catalog.Service) error
	Update(ctx context.Context, svc *catalog.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*catalog.Service, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*booking.Booking, error)
	ListByBusinessAndDate(ctx context.Context, businessID uuid.UUID, date string) ([]*booking.Booking, error)
	// ListAwaitingReminder returns confirmed bookings without a reminder whose date lies in [fromDate, toDate].
	ListAwaitingReminder(ctx context.Context, fromDate, toDate string) ([]*booking.Booking, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, job *notification.Job) error
	UpdateJob(ctx context.Context, job *notification.Job) error
	// ClaimDue leases up to limit pending jobs with run_at <= now, oldest first, until now+lease.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*notification.Job, error)
}

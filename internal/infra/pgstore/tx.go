package pgstore

import (
	"context"

	"slotbook/internal/infra"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the subset of pgx.Tx the repositories need.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgTx struct {
	db dbtx

	users         *userRepo
	services      *serviceRepo
	bookings      *bookingRepo
	notifications *notificationRepo
}

func newTx(db dbtx) *pgTx {
	return &pgTx{db: db}
}

// LockBusiness takes a transaction-scoped advisory lock; Postgres releases it on commit or rollback.
func (t *pgTx) LockBusiness(ctx context.Context, businessID uuid.UUID) error {
	if _, err := t.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, businessID.String()); err != nil {
		return infra.WrapRepoErr("failed to lock business", err)
	}
	return nil
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = &userRepo{db: t.db}
	}
	return t.users
}

func (t *pgTx) Services() shared.ServiceRepository {
	if t.services == nil {
		t.services = &serviceRepo{db: t.db}
	}
	return t.services
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = &bookingRepo{db: t.db}
	}
	return t.bookings
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notifications == nil {
		t.notifications = &notificationRepo{db: t.db}
	}
	return t.notifications
}

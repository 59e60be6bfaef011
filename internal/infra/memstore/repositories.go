package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/infra"

	"github.com/google/uuid"
)

type userRepo struct {
	tx *memTx
}

func (r *userRepo) Create(_ context.Context, acc *user.Account) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.users, r.tx.users, acc.ID()); exists {
		return infra.WrapRepoErr("user id already exists", nil, infra.KindDuplicateKey)
	}
	email := acc.Email().Value()
	taken := scan(r.tx, r.tx.store.users, r.tx.users, func(row userRow) bool {
		return row.Active && row.Email == email
	})
	if len(taken) > 0 {
		return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
	}
	r.tx.users[acc.ID()] = clone(toUserRow(acc))
	return nil
}

func (r *userRepo) Update(_ context.Context, acc *user.Account) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.users, r.tx.users, acc.ID()); !exists {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	r.tx.users[acc.ID()] = clone(toUserRow(acc))
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.Account, error) {
	row, ok := lookup(r.tx, r.tx.store.users, r.tx.users, id)
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return row.toDomain()
}

func (r *userRepo) FindActiveByEmail(_ context.Context, email string) (*user.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows := scan(r.tx, r.tx.store.users, r.tx.users, func(row userRow) bool {
		return row.Active && row.Email == email
	})
	if len(rows) == 0 {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return rows[0].toDomain()
}

type serviceRepo struct {
	tx *memTx
}

func (r *serviceRepo) Create(_ context.Context, svc *catalog.Service) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.services, r.tx.services, svc.ID()); exists {
		return infra.WrapRepoErr("service id already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.services[svc.ID()] = toServiceRow(svc)
	return nil
}

func (r *serviceRepo) Update(_ context.Context, svc *catalog.Service) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.services, r.tx.services, svc.ID()); !exists {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	r.tx.services[svc.ID()] = toServiceRow(svc)
	return nil
}

func (r *serviceRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	row, ok := lookup(r.tx, r.tx.store.services, r.tx.services, id)
	if !ok {
		return nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r *serviceRepo) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]*catalog.Service, error) {
	rows := scan(r.tx, r.tx.store.services, r.tx.services, func(row serviceRow) bool {
		return row.BusinessID == businessID
	})
	out := make([]*catalog.Service, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	catalog.SortByName(out)
	return out, nil
}

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.bookings, r.tx.bookings, b.ID()); exists {
		return infra.WrapRepoErr("booking id already exists", nil, infra.KindDuplicateKey)
	}
	r.tx.bookings[b.ID()] = clone(b.Snapshot())
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.bookings, r.tx.bookings, b.ID()); !exists {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.tx.bookings[b.ID()] = clone(b.Snapshot())
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := lookup(r.tx, r.tx.store.bookings, r.tx.bookings, id)
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return booking.ReconstructBooking(snap), nil
}

func (r *bookingRepo) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]*booking.Booking, error) {
	return r.list(func(s booking.Snapshot) bool {
		return s.BusinessID == businessID
	}), nil
}

func (r *bookingRepo) ListByBusinessAndDate(_ context.Context, businessID uuid.UUID, date string) ([]*booking.Booking, error) {
	return r.list(func(s booking.Snapshot) bool {
		return s.BusinessID == businessID && s.Date == date
	}), nil
}

func (r *bookingRepo) ListAwaitingReminder(_ context.Context, fromDate, toDate string) ([]*booking.Booking, error) {
	return r.list(func(s booking.Snapshot) bool {
		return s.Status == booking.StatusConfirmed && !s.ReminderSent &&
			s.Date >= fromDate && s.Date <= toDate
	}), nil
}

func (r *bookingRepo) list(keep func(booking.Snapshot) bool) []*booking.Booking {
	snaps := scan(r.tx, r.tx.store.bookings, r.tx.bookings, keep)
	out := make([]*booking.Booking, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, booking.ReconstructBooking(s))
	}
	booking.SortBySchedule(out)
	return out
}

type notificationRepo struct {
	tx *memTx
}

func (r *notificationRepo) CreateJob(_ context.Context, job *notification.Job) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	r.tx.jobs[job.ID()] = toJobRow(job)
	return nil
}

func (r *notificationRepo) UpdateJob(_ context.Context, job *notification.Job) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := lookup(r.tx, r.tx.store.jobs, r.tx.jobs, job.ID()); !exists {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	r.tx.jobs[job.ID()] = toJobRow(job)
	return nil
}

// ClaimDue leases directly on committed state so concurrent dispatchers never share a job.
func (r *notificationRepo) ClaimDue(_ context.Context, now time.Time, lease time.Duration, limit int) ([]*notification.Job, error) {
	if err := r.tx.writable(); err != nil {
		return nil, err
	}
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []jobRow
	for _, row := range s.jobs {
		if row.Status == string(notification.StatusPending) && !row.RunAt.After(now) {
			due = append(due, row)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].RunAt.Equal(due[j].RunAt) {
			return due[i].RunAt.Before(due[j].RunAt)
		}
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]*notification.Job, 0, len(due))
	for _, row := range due {
		job := row.toDomain()
		job.Lease(now.Add(lease))
		s.jobs[row.ID] = toJobRow(job)
		out = append(out, job)
	}
	return out, nil
}

// Jobs returns every outbox job, oldest first. Used by tests and the remind command's summary.
func (s *Store) Jobs() []*notification.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*notification.Job, 0, len(s.jobs))
	for _, row := range s.jobs {
		out = append(out, clone(row).toDomain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

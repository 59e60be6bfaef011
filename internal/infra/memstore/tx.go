package memstore

import (
	"context"

	"slotbook/internal/domain/booking"
	"slotbook/internal/infra"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type memTx struct {
	store    *Store
	readOnly bool
	held     []uuid.UUID

	users    map[uuid.UUID]userRow
	services map[uuid.UUID]serviceRow
	bookings map[uuid.UUID]booking.Snapshot
	jobs     map[uuid.UUID]jobRow
}

func newTx(store *Store, readOnly bool) *memTx {
	return &memTx{
		store:    store,
		readOnly: readOnly,
		users:    make(map[uuid.UUID]userRow),
		services: make(map[uuid.UUID]serviceRow),
		bookings: make(map[uuid.UUID]booking.Snapshot),
		jobs:     make(map[uuid.UUID]jobRow),
	}
}

func (t *memTx) LockBusiness(ctx context.Context, businessID uuid.UUID) error {
	for _, id := range t.held {
		if id == businessID {
			return nil
		}
	}
	if err := t.store.locks.acquire(ctx, businessID); err != nil {
		return err
	}
	t.held = append(t.held, businessID)
	return nil
}

func (t *memTx) Users() shared.UserRepository                 { return &userRepo{tx: t} }
func (t *memTx) Services() shared.ServiceRepository           { return &serviceRepo{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository           { return &bookingRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository { return &notificationRepo{tx: t} }

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.locks.release(t.held[i])
	}
	t.held = nil
}

func (t *memTx) writable() error {
	if t.readOnly {
		return infra.WrapRepoErr("memstore write", errReadOnlyTx)
	}
	return nil
}

func (t *memTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Email uniqueness is re-checked here because registrations do not take a business lock.
	for id, row := range t.users {
		if !row.Active {
			continue
		}
		for otherID, other := range s.users {
			if otherID != id && other.Active && other.Email == row.Email {
				return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
			}
		}
	}

	for id, row := range t.users {
		s.users[id] = row
	}
	for id, row := range t.services {
		s.services[id] = row
	}
	for id, row := range t.bookings {
		s.bookings[id] = row
	}
	for id, row := range t.jobs {
		s.jobs[id] = row
	}
	return nil
}

// clone copies a row by value. Pointer and map fields are shared; the domain replaces them
// instead of mutating in place.
func clone[R any](row R) R {
	var out R
	if err := copier.Copy(&out, &row); err != nil {
		panic(err)
	}
	return out
}

func lookup[R any](t *memTx, committed map[uuid.UUID]R, staged map[uuid.UUID]R, id uuid.UUID) (R, bool) {
	if row, ok := staged[id]; ok {
		return clone(row), true
	}
	t.store.mu.RLock()
	row, ok := committed[id]
	t.store.mu.RUnlock()
	if !ok {
		var zero R
		return zero, false
	}
	return clone(row), true
}

func scan[R any](t *memTx, committed map[uuid.UUID]R, staged map[uuid.UUID]R, keep func(R) bool) []R {
	var out []R
	t.store.mu.RLock()
	for id, row := range committed {
		if _, shadowed := staged[id]; shadowed {
			continue
		}
		if keep(row) {
			out = append(out, clone(row))
		}
	}
	t.store.mu.RUnlock()
	for _, row := range staged {
		if keep(row) {
			out = append(out, clone(row))
		}
	}
	return out
}

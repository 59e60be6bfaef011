package memstore

import (
	"context"
	"sync"

	"slotbook/internal/domain/booking"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnlyTx = errs.New("write attempted in read-only transaction")

// Store keeps committed state in maps guarded by mu. Transactions stage their writes
// and apply them in one step on commit, so a failed unit of work leaves nothing behind.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]userRow
	services map[uuid.UUID]serviceRow
	bookings map[uuid.UUID]booking.Snapshot
	jobs     map[uuid.UUID]jobRow

	locks *keyedLocks
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]userRow),
		services: make(map[uuid.UUID]serviceRow),
		bookings: make(map[uuid.UUID]booking.Snapshot),
		jobs:     make(map[uuid.UUID]jobRow),
		locks:    newKeyedLocks(),
	}
}

type UoW struct {
	store *Store
}

func NewUoW(store *Store) shared.UnitOfWork {
	return &UoW{store: store}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := newTx(u.store, false)
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := newTx(u.store, true)
	defer tx.release()
	return fn(ctx, tx)
}

// keyedLocks hands out one binary semaphore per business id; idle entries are dropped.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{entries: make(map[uuid.UUID]*lockEntry)}
}

func (k *keyedLocks) acquire(ctx context.Context, id uuid.UUID) error {
	k.mu.Lock()
	e, ok := k.entries[id]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		k.entries[id] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.drop(id, e)
		return ctx.Err()
	}
}

func (k *keyedLocks) release(id uuid.UUID) {
	k.mu.Lock()
	e, ok := k.entries[id]
	k.mu.Unlock()
	if !ok {
		return
	}
	<-e.sem
	k.drop(id, e)
}

func (k *keyedLocks) drop(id uuid.UUID, e *lockEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, id)
	}
}

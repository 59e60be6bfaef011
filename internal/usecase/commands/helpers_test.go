//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/notification"
	"slotbook/internal/infra/memstore"
	"slotbook/internal/infra/revocation"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/jwt"
	"slotbook/internal/pkg/password"
	"slotbook/internal/testsupport/builder"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// world wires the real use cases over the in-memory store.
type world struct {
	store       *memstore.Store
	uow         shared.UnitOfWork
	clock       *clock.MockClock
	jwt         *jwt.Service
	revocations *revocation.MemoryStore
	validator   usecase.TokenValidator

	auth     commands.AuthCommands
	services commands.ServiceCommands
}

func newWorld() *world {
	w := &world{
		store: memstore.New(),
		clock: clock.NewMockClock(builder.DefaultNow),
	}
	w.uow = memstore.NewUoW(w.store)
	w.jwt = jwt.NewServiceWithClock("test-secret", 168*time.Hour, w.clock.Now)
	w.revocations = revocation.NewMemoryStore(w.clock)
	w.validator = usecase.NewTokenValidator(w.jwt, w.revocations)
	w.auth = commands.NewAuthCommands(w.uow, password.NewBcryptHasherWithCost(bcrypt.MinCost), w.jwt, w.revocations, w.clock)
	w.services = commands.NewServiceCommands(w.uow, w.clock)
	return w
}

func (w *world) bookings(files commands.FileStore) commands.BookingCommands {
	return commands.NewBookingCommands(w.uow, files, w.clock, commands.BookingSettings{
		Location:    time.UTC,
		OwnerAlerts: true,
	})
}

func (w *world) bookingQueries() queries.BookingQueries {
	return queries.NewBookingQueries(w.uow, nil, w.clock, queries.BookingQuerySettings{
		Location:       time.UTC,
		ReminderWindow: 24 * time.Hour,
	})
}

func (w *world) serviceQueries() queries.ServiceQueries {
	return queries.NewServiceQueries(w.uow)
}

func (w *world) register(t *testing.T, email string) *commands.AuthResult {
	t.Helper()
	b := builder.NewAccountBuilder().WithEmail(email)
	res, err := w.auth.Register(context.Background(), commands.RegisterInput{
		Email:        b.Email,
		Password:     b.Password,
		BusinessName: b.BusinessName,
		OwnerName:    b.OwnerName,
		Phone:        b.Phone,
		BusinessType: b.BusinessType,
	})
	require.NoError(t, err)
	return res
}

func (w *world) service(t *testing.T, businessID uuid.UUID, mutate func(*builder.ServiceBuilder)) *queries.ServiceView {
	t.Helper()
	b := builder.NewServiceBuilder().WithBusinessID(businessID)
	if mutate != nil {
		b.With(mutate)
	}
	view, err := w.services.CreateService(context.Background(), businessID, b.Fields())
	require.NoError(t, err)
	return view
}

func topics(jobs []*notification.Job) []notification.Topic {
	out := make([]notification.Topic, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Topic())
	}
	return out
}

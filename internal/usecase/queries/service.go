package queries

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const PopularServicesLimit = 5

var ErrInvalidAvailabilityDate = errs.New("date must be YYYY-MM-DD")

type ServiceQueries interface {
	ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]*ServiceView, error)
	GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*ServiceView, error)
	SearchServices(ctx context.Context, businessID uuid.UUID, term string) ([]*ServiceView, error)
	ServicesByCategory(ctx context.Context, businessID uuid.UUID, category string) ([]*ServiceView, error)
	Categories(ctx context.Context, businessID uuid.UUID) ([]string, error)
	Stats(ctx context.Context, businessID uuid.UUID) (*catalog.Stats, error)
	Popular(ctx context.Context, businessID uuid.UUID) ([]*ServiceView, error)
	Availability(ctx context.Context, serviceID uuid.UUID, date string) (*AvailabilityView, error)
}

type serviceQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewServiceQueries(uow shared.UnitOfWork) ServiceQueries {
	return &serviceQueriesImpl{uow: uow}
}

func (q *serviceQueriesImpl) ListServices(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]*ServiceView, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !includeInactive {
		services = catalog.ActiveOnly(services)
	}
	return NewServiceViews(services), nil
}

func (q *serviceQueriesImpl) GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*ServiceView, error) {
	var view *ServiceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Services().FindByID(ctx, serviceID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !svc.BelongsTo(businessID) {
			return errs.ErrNotFound
		}
		view = NewServiceView(svc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *serviceQueriesImpl) SearchServices(ctx context.Context, businessID uuid.UUID, term string) ([]*ServiceView, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	var out []*catalog.Service
	for _, s := range catalog.ActiveOnly(services) {
		if s.Matches(term) {
			out = append(out, s)
		}
	}
	return NewServiceViews(out), nil
}

func (q *serviceQueriesImpl) ServicesByCategory(ctx context.Context, businessID uuid.UUID, category string) ([]*ServiceView, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	var out []*catalog.Service
	for _, s := range catalog.ActiveOnly(services) {
		if s.Category() == category {
			out = append(out, s)
		}
	}
	return NewServiceViews(out), nil
}

func (q *serviceQueriesImpl) Categories(ctx context.Context, businessID uuid.UUID) ([]string, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(services), nil
}

func (q *serviceQueriesImpl) Stats(ctx context.Context, businessID uuid.UUID) (*catalog.Stats, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	st := catalog.Summarize(services)
	return &st, nil
}

func (q *serviceQueriesImpl) Popular(ctx context.Context, businessID uuid.UUID) ([]*ServiceView, error) {
	services, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return NewServiceViews(catalog.Popular(services, PopularServicesLimit)), nil
}

// Availability is public; inactive services are reported as missing.
func (q *serviceQueriesImpl) Availability(ctx context.Context, serviceID uuid.UUID, date string) (*AvailabilityView, error) {
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		return nil, errs.AsValidation(errs.Field("date", ErrInvalidAvailabilityDate))
	}

	var view *AvailabilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Services().FindByID(ctx, serviceID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !svc.IsActive() {
			return errs.ErrNotFound
		}
		view = &AvailabilityView{
			ServiceID: svc.ID(),
			Date:      date,
			Duration:  svc.Duration(),
			Slots:     svc.Availability(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *serviceQueriesImpl) load(ctx context.Context, businessID uuid.UUID) ([]*catalog.Service, error) {
	var services []*catalog.Service
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		services, err = tx.Services().ListByBusiness(ctx, businessID)
		return shared.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}
	catalog.SortByName(services)
	return services, nil
}

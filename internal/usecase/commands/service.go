package commands

import (
	"context"

	"slotbook/internal/domain/catalog"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/patch"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BulkUpdateItem struct {
	ID    uuid.UUID
	Patch catalog.Patch
}

// BulkUpdateResult reports one item of a bulk update; failures do not stop the batch.
type BulkUpdateResult struct {
	ID      uuid.UUID            `json:"id"`
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Service *queries.ServiceView `json:"service,omitempty"`
}

type ServiceCommands interface {
	CreateService(ctx context.Context, businessID uuid.UUID, f catalog.Fields) (*queries.ServiceView, error)
	UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, p catalog.Patch) (*queries.ServiceView, error)
	DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error
	BulkUpdate(ctx context.Context, businessID uuid.UUID, items []BulkUpdateItem) []BulkUpdateResult
}

type serviceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewServiceCommands(uow shared.UnitOfWork, clk clock.Clock) ServiceCommands {
	return &serviceCommandsImpl{uow: uow, clock: clk}
}

func (s *serviceCommandsImpl) CreateService(ctx context.Context, businessID uuid.UUID, f catalog.Fields) (*queries.ServiceView, error) {
	svc, err := catalog.NewService(businessID, f, s.clock.Now())
	if err != nil {
		return nil, errs.AsValidation(err)
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBusiness(ctx, businessID); err != nil {
			return err
		}
		existing, err := tx.Services().ListByBusiness(ctx, businessID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if err = catalog.EnsureUniqueName(svc.Name(), existing, uuid.Nil); err != nil {
			return err
		}
		return shared.StoreErr(tx.Services().Create(ctx, svc))
	})
	if err != nil {
		return nil, err
	}
	return queries.NewServiceView(svc), nil
}

func (s *serviceCommandsImpl) UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, p catalog.Patch) (*queries.ServiceView, error) {
	var view *queries.ServiceView
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBusiness(ctx, businessID); err != nil {
			return err
		}
		var err error
		view, err = s.update(ctx, tx, businessID, serviceID, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *serviceCommandsImpl) DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockBusiness(ctx, businessID); err != nil {
			return err
		}
		svc, err := ownedService(ctx, tx, businessID, serviceID)
		if err != nil {
			return err
		}
		svc.Deactivate(s.clock.Now())
		return shared.StoreErr(tx.Services().Update(ctx, svc))
	})
}

// BulkUpdate applies each item in its own unit of work.
func (s *serviceCommandsImpl) BulkUpdate(ctx context.Context, businessID uuid.UUID, items []BulkUpdateItem) []BulkUpdateResult {
	results := make([]BulkUpdateResult, 0, len(items))
	for _, item := range items {
		view, err := s.UpdateService(ctx, businessID, item.ID, item.Patch)
		if err != nil {
			results = append(results, BulkUpdateResult{ID: item.ID, Error: err.Error()})
			continue
		}
		results = append(results, BulkUpdateResult{ID: item.ID, Success: true, Service: view})
	}
	return results
}

func (s *serviceCommandsImpl) update(ctx context.Context, tx shared.Tx, businessID, serviceID uuid.UUID, p catalog.Patch) (*queries.ServiceView, error) {
	svc, err := ownedService(ctx, tx, businessID, serviceID)
	if err != nil {
		return nil, err
	}
	// only a rename or a reactivation can collide with another active service
	recheck := patch.Changed(p.Name, svc.Name()) || patch.Changed(p.IsActive, svc.IsActive())
	if err = svc.Apply(p, s.clock.Now()); err != nil {
		return nil, errs.AsValidation(err)
	}
	if recheck && svc.IsActive() {
		existing, err := tx.Services().ListByBusiness(ctx, businessID)
		if err != nil {
			return nil, shared.StoreErr(err)
		}
		if err = catalog.EnsureUniqueName(svc.Name(), existing, svc.ID()); err != nil {
			return nil, err
		}
	}
	if err = tx.Services().Update(ctx, svc); err != nil {
		return nil, shared.StoreErr(err)
	}
	return queries.NewServiceView(svc), nil
}

// ownedService hides services of other businesses behind ErrNotFound.
func ownedService(ctx context.Context, tx shared.Tx, businessID, serviceID uuid.UUID) (*catalog.Service, error) {
	svc, err := tx.Services().FindByID(ctx, serviceID)
	if err != nil {
		return nil, shared.StoreErr(err)
	}
	if !svc.BelongsTo(businessID) {
		return nil, errs.ErrNotFound
	}
	return svc, nil
}

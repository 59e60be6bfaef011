package queries

import (
	"context"

	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AccountView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AccountView, error) {
	var view *AccountView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !acc.IsActive() {
			return errs.ErrNotFound
		}
		view = NewAccountView(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

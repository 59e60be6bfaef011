package commands

import (
	"context"

	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type UploadCommands interface {
	UploadLogo(ctx context.Context, userID uuid.UUID, file Upload) (*queries.AccountView, error)
}

type uploadCommandsImpl struct {
	uow   shared.UnitOfWork
	files FileStore
	clock clock.Clock
}

func NewUploadCommands(uow shared.UnitOfWork, files FileStore, clk clock.Clock) UploadCommands {
	return &uploadCommandsImpl{uow: uow, files: files, clock: clk}
}

func (u *uploadCommandsImpl) UploadLogo(ctx context.Context, userID uuid.UUID, file Upload) (*queries.AccountView, error) {
	url, err := u.files.Save(ctx, "logos", file)
	if err != nil {
		return nil, errs.Wrap(err, "store logo")
	}

	var view *queries.AccountView
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := lockedAccount(ctx, tx, userID)
		if err != nil {
			return err
		}
		acc.SetLogo(url, u.clock.Now())
		if err = tx.Users().Update(ctx, acc); err != nil {
			return shared.StoreErr(err)
		}
		view = queries.NewAccountView(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/auth"
	"slotbook/internal/domain/user"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/jwt"
	"slotbook/internal/pkg/password"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTokenGeneration = errs.New("token generation failed")

type RegisterInput struct {
	Email        string
	Password     string
	BusinessName string
	OwnerName    string
	Phone        string
	BusinessType string
}

type AuthResult struct {
	Account   *queries.AccountView
	Token     string
	ExpiresAt time.Time
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, pass string) (*AuthResult, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, p user.ProfilePatch) (*queries.AccountView, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, p user.SettingsPatch) (*queries.AccountView, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	Logout(ctx context.Context, principal *usecase.Principal) error
	DeactivateAccount(ctx context.Context, userID uuid.UUID) error
}

type authCommandsImpl struct {
	uow         shared.UnitOfWork
	hasher      password.Hasher
	jwtService  *jwt.Service
	revocations usecase.RevocationStore
	clock       clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	hasher password.Hasher,
	jwtService *jwt.Service,
	revocations usecase.RevocationStore,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:         uow,
		hasher:      hasher,
		jwtService:  jwtService,
		revocations: revocations,
		clock:       clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.AsValidation(errs.Field("email", err))
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return nil, errs.AsValidation(errs.Field("password", err))
	}

	// bcrypt runs before the transaction so the store is never held for the hash.
	hash, err := a.hasher.Hash(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	acc, err := user.NewAccount(email, hash, user.Profile{
		BusinessName: in.BusinessName,
		OwnerName:    in.OwnerName,
		Phone:        in.Phone,
		BusinessType: in.BusinessType,
	}, a.clock.Now())
	if err != nil {
		return nil, errs.AsValidation(err)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, ferr := tx.Users().FindActiveByEmail(ctx, email.Value()); ferr == nil {
			return errs.ErrDuplicateAccount
		} else if !infra.IsKind(ferr, infra.KindNotFound) {
			return shared.StoreErr(ferr)
		}
		return tx.Users().Create(ctx, acc)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrDuplicateAccount)
		}
		return nil, err
	}

	slog.Info("account registered", "user_id", acc.ID())
	return a.issue(acc)
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*AuthResult, error) {
	credentials, err := auth.NewCredentials(email, pass)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	var acc *user.Account
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		acc, ferr = tx.Users().FindActiveByEmail(ctx, credentials.Email().Value())
		return ferr
	})
	if err != nil {
		// Unknown and inactive accounts look the same as a wrong password.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrInvalidCredentials)
		}
		return nil, shared.StoreErr(err)
	}

	if err = a.hasher.Compare(acc.PasswordHash(), credentials.Password()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	// The hash was checked outside any transaction, so the account is read again under its
	// lock and the login is refused if the password changed or the account went away meanwhile.
	checkedHash := acc.PasswordHash()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := lockedAccount(ctx, tx, acc.ID())
		if err != nil {
			return err
		}
		if current.PasswordHash() != checkedHash {
			return errs.ErrInvalidCredentials
		}
		current.RecordLogin(a.clock.Now())
		if err = tx.Users().Update(ctx, current); err != nil {
			return shared.StoreErr(err)
		}
		acc = current
		return nil
	})
	switch {
	case errs.Is(err, errs.ErrNotFound), errs.Is(err, errs.ErrInvalidCredentials):
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	case err != nil:
		slog.Warn("failed to update last login", "user_id", acc.ID(), "error", err.Error())
		// login still succeeds
	}

	return a.issue(acc)
}

func (a *authCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, p user.ProfilePatch) (*queries.AccountView, error) {
	return a.mutate(ctx, userID, func(acc *user.Account) error {
		return acc.UpdateProfile(p, a.clock.Now())
	})
}

func (a *authCommandsImpl) UpdateSettings(ctx context.Context, userID uuid.UUID, p user.SettingsPatch) (*queries.AccountView, error) {
	return a.mutate(ctx, userID, func(acc *user.Account) error {
		return acc.UpdateSettings(p, a.clock.Now())
	})
}

func (a *authCommandsImpl) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	pw, err := user.NewPassword(next)
	if err != nil {
		return errs.AsValidation(errs.Field("new_password", err))
	}

	var acc *user.Account
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		acc, ferr = activeAccount(ctx, tx, userID)
		return ferr
	})
	if err != nil {
		return err
	}
	if err = a.hasher.Compare(acc.PasswordHash(), current); err != nil {
		return errs.Mark(err, errs.ErrIncorrectPassword)
	}
	hash, err := a.hasher.Hash(pw.Value())
	if err != nil {
		return errs.Wrap(err, "hash password")
	}

	_, err = a.mutate(ctx, userID, func(acc *user.Account) error {
		acc.ChangePasswordHash(hash, a.clock.Now())
		return nil
	})
	return err
}

func (a *authCommandsImpl) Logout(ctx context.Context, principal *usecase.Principal) error {
	ttl := principal.ExpiresAt.Sub(a.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := a.revocations.Revoke(ctx, principal.TokenID, ttl); err != nil {
		return errs.Wrap(err, "revoke token")
	}
	return nil
}

func (a *authCommandsImpl) DeactivateAccount(ctx context.Context, userID uuid.UUID) error {
	_, err := a.mutate(ctx, userID, func(acc *user.Account) error {
		acc.Deactivate(a.clock.Now())
		return nil
	})
	if err == nil {
		slog.Info("account deactivated", "user_id", userID)
	}
	return err
}

func (a *authCommandsImpl) mutate(ctx context.Context, userID uuid.UUID, fn func(acc *user.Account) error) (*queries.AccountView, error) {
	var view *queries.AccountView
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := lockedAccount(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err = fn(acc); err != nil {
			return errs.AsValidation(err)
		}
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

func (a *authCommandsImpl) issue(acc *user.Account) (*AuthResult, error) {
	token, claims, err := a.jwtService.GenerateToken(jwt.Subject{
		UserID:       acc.ID(),
		Email:        acc.Email().Value(),
		Role:         acc.Role().String(),
		BusinessName: acc.Profile().BusinessName,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		Account:   queries.NewAccountView(acc),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// lockedAccount takes the owner's business lock before reading, so account writes of one
// owner apply one after another and none of them writes back a stale row.
func lockedAccount(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*user.Account, error) {
	if err := tx.LockBusiness(ctx, userID); err != nil {
		return nil, err
	}
	return activeAccount(ctx, tx, userID)
}

func activeAccount(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*user.Account, error) {
	acc, err := tx.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NotFoundAs(err, errs.ErrNotFound)
	}
	if !acc.IsActive() {
		return nil, errs.ErrNotFound
	}
	return acc, nil
}

//go:build unit || e2e

package builder

import (
	"time"

	"slotbook/internal/domain/user"
	reqdto "slotbook/internal/handler/dto/request"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type AccountBuilder struct {
	Email        string
	Password     string
	PasswordHash string
	BusinessName string
	OwnerName    string
	Phone        string
	BusinessType string
	IsActive     bool
}

func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{
		Email:        "owner@example.com",
		Password:     "password123",
		PasswordHash: "hashed_password",
		BusinessName: "Glow Studio",
		OwnerName:    "Sam Rivera",
		Phone:        "+15550100200",
		BusinessType: "salon",
		IsActive:     true,
	}
}

func (a *AccountBuilder) With(mutate func(*AccountBuilder)) *AccountBuilder {
	mutate(a)
	return a
}

func (a *AccountBuilder) profile() user.Profile {
	return user.Profile{
		BusinessName: a.BusinessName,
		OwnerName:    a.OwnerName,
		Phone:        a.Phone,
		BusinessType: a.BusinessType,
	}
}

// Build methods
func (a *AccountBuilder) BuildDomain(now time.Time) (*user.Account, error) {
	email, err := user.NewEmail(a.Email)
	if err != nil {
		return nil, err
	}
	acc, err := user.NewAccount(email, a.PasswordHash, a.profile(), now)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		acc.Deactivate(now)
	}
	return acc, nil
}

func (a *AccountBuilder) BuildView() *queries.AccountView {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &queries.AccountView{
		ID:           uuid.New(),
		Email:        a.Email,
		BusinessName: a.BusinessName,
		OwnerName:    a.OwnerName,
		Phone:        a.Phone,
		BusinessType: a.BusinessType,
		Role:         user.RoleBusinessOwner.String(),
		IsActive:     a.IsActive,
		Settings:     user.DefaultSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *AccountBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:        a.Email,
		Password:     a.Password,
		BusinessName: a.BusinessName,
		OwnerName:    a.OwnerName,
		Phone:        a.Phone,
		BusinessType: a.BusinessType,
	}
}

func (a *AccountBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: a.Email, Password: a.Password}
}

// Fluent builder methods
func (a *AccountBuilder) WithEmail(email string) *AccountBuilder {
	a.Email = email
	return a
}

func (a *AccountBuilder) WithPassword(password string) *AccountBuilder {
	a.Password = password
	return a
}

func (a *AccountBuilder) WithPasswordHash(hash string) *AccountBuilder {
	a.PasswordHash = hash
	return a
}

func (a *AccountBuilder) WithBusinessName(name string) *AccountBuilder {
	a.BusinessName = name
	return a
}

func (a *AccountBuilder) WithPhone(phone string) *AccountBuilder {
	a.Phone = phone
	return a
}

func (a *AccountBuilder) AsInactive() *AccountBuilder {
	a.IsActive = false
	return a
}

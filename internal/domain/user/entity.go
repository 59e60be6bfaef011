package user

import (
	"strings"
	"time"

	"slotbook/internal/pkg/patch"

	"github.com/google/uuid"
)

// Account is a business owner; its id is the tenant boundary for services and bookings.
type Account struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	profile      Profile
	role         Role
	active       bool
	settings     Settings
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewAccount(email Email, passwordHash string, profile Profile, now time.Time) (*Account, error) {
	profile = profile.normalized()
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &Account{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		profile:      profile,
		role:         RoleBusinessOwner,
		active:       true,
		settings:     DefaultSettings(),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructAccount(
	id uuid.UUID,
	email Email,
	passwordHash string,
	profile Profile,
	role Role,
	active bool,
	settings Settings,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		profile:      profile,
		role:         role,
		active:       active,
		settings:     settings,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ProfilePatch lists the only profile fields an owner may change.
type ProfilePatch struct {
	BusinessName *string
	OwnerName    *string
	Phone        *string
	BusinessType *string
	Settings     *SettingsPatch
}

func (a *Account) UpdateProfile(p ProfilePatch, now time.Time) error {
	next := a.profile
	next.BusinessName = patch.Coalesce(p.BusinessName, next.BusinessName)
	next.OwnerName = patch.Coalesce(p.OwnerName, next.OwnerName)
	next.Phone = patch.Coalesce(p.Phone, next.Phone)
	next.BusinessType = patch.Coalesce(p.BusinessType, next.BusinessType)
	next = next.normalized()
	if err := next.validate(); err != nil {
		return err
	}

	settings := a.settings
	if p.Settings != nil {
		var err error
		if settings, err = a.settings.Apply(*p.Settings); err != nil {
			return err
		}
	}

	a.profile = next
	a.settings = settings
	a.updatedAt = now
	return nil
}

func (a *Account) UpdateSettings(p SettingsPatch, now time.Time) error {
	next, err := a.settings.Apply(p)
	if err != nil {
		return err
	}
	a.settings = next
	a.updatedAt = now
	return nil
}

func (a *Account) SetLogo(url string, now time.Time) {
	logo := strings.TrimSpace(url)
	a.settings = a.settings.clone()
	a.settings.Branding.Logo = &logo
	a.updatedAt = now
}

func (a *Account) ChangePasswordHash(hash string, now time.Time) {
	a.passwordHash = hash
	a.updatedAt = now
}

func (a *Account) RecordLogin(now time.Time) {
	t := now
	a.lastLoginAt = &t
}

func (a *Account) Deactivate(now time.Time) {
	a.active = false
	a.updatedAt = now
}

func (a *Account) ID() uuid.UUID           { return a.id }
func (a *Account) Email() Email            { return a.email }
func (a *Account) PasswordHash() string    { return a.passwordHash }
func (a *Account) Profile() Profile        { return a.profile }
func (a *Account) Role() Role              { return a.role }
func (a *Account) IsActive() bool          { return a.active }
func (a *Account) Settings() Settings      { return a.settings.clone() }
func (a *Account) LastLoginAt() *time.Time { return a.lastLoginAt }
func (a *Account) CreatedAt() time.Time    { return a.createdAt }
func (a *Account) UpdatedAt() time.Time    { return a.updatedAt }

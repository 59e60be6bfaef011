package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"slotbook/internal/pkg/errs"
)

var (
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidRole         = errors.New("invalid role")
	ErrPasswordTooWeak     = errors.New("password must be at least 8 characters long")
	ErrInvalidBusinessName = errors.New("business name must be between 2 and 100 characters")
	ErrInvalidOwnerName    = errors.New("owner name must be between 2 and 100 characters")
	ErrInvalidPhone        = errors.New("phone must be between 10 and 15 characters")
	ErrInvalidBusinessType = errors.New("business type must be at most 50 characters")
)

const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

// NewEmail lower-cases the address; lookups are case-insensitive.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < MinPasswordLength {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

// Profile holds the editable business details of an account.
type Profile struct {
	BusinessName string
	OwnerName    string
	Phone        string
	BusinessType string
}

func (p Profile) normalized() Profile {
	return Profile{
		BusinessName: strings.TrimSpace(p.BusinessName),
		OwnerName:    strings.TrimSpace(p.OwnerName),
		Phone:        strings.TrimSpace(p.Phone),
		BusinessType: strings.TrimSpace(p.BusinessType),
	}
}

func (p Profile) validate() error {
	if n := utf8.RuneCountInString(p.BusinessName); n < 2 || n > 100 {
		return errs.Field("business_name", ErrInvalidBusinessName)
	}
	if n := utf8.RuneCountInString(p.OwnerName); n < 2 || n > 100 {
		return errs.Field("owner_name", ErrInvalidOwnerName)
	}
	if n := len(p.Phone); n < 10 || n > 15 {
		return errs.Field("phone", ErrInvalidPhone)
	}
	if utf8.RuneCountInString(p.BusinessType) > 50 {
		return errs.Field("business_type", ErrInvalidBusinessType)
	}
	return nil
}

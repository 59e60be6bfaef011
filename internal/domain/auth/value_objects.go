package auth

import (
	"errors"

	"slotbook/internal/domain/user"
)

var ErrMissingPassword = errors.New("password is required")

// Credentials is a login attempt. Length rules are not re-applied so older passwords still work.
type Credentials struct {
	email    user.Email
	password string
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := user.NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}
	if passwordStr == "" {
		return Credentials{}, ErrMissingPassword
	}
	return Credentials{email: email, password: passwordStr}, nil
}

func (c Credentials) Email() user.Email {
	return c.email
}

func (c Credentials) Password() string {
	return c.password
}

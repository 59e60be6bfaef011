package response

import (
	"time"

	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
)

type AuthResponse struct {
	Message   string               `json:"message"`
	User      *queries.AccountView `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

func FromAuthResult(msg string, r *commands.AuthResult) AuthResponse {
	return AuthResponse{
		Message:   msg,
		User:      r.Account,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}

type UserResponse struct {
	Message string               `json:"message,omitempty"`
	User    *queries.AccountView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

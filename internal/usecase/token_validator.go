package usecase

import (
	"context"
	"time"

	"slotbook/internal/domain/user"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*Principal, error)
}

// RevocationStore remembers logged-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Principal is the authenticated business owner behind a request.
type Principal struct {
	UserID       uuid.UUID
	Email        string
	Role         user.Role
	BusinessName string
	TokenID      string
	ExpiresAt    time.Time
}

type tokenValidatorImpl struct {
	jwtService  *jwt.Service
	revocations RevocationStore
}

func NewTokenValidator(jwtService *jwt.Service, revocations RevocationStore) TokenValidator {
	return &tokenValidatorImpl{
		jwtService:  jwtService,
		revocations: revocations,
	}
}

func (t *tokenValidatorImpl) ValidateToken(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidToken)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidToken)
	}

	revoked, err := t.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Wrap(err, "check token revocation")
	}
	if revoked {
		return nil, errs.ErrInvalidToken
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &Principal{
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         role,
		BusinessName: claims.BusinessName,
		TokenID:      claims.ID,
		ExpiresAt:    expiresAt,
	}, nil
}

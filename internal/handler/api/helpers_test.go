//go:build unit

package api_test

import (
	"os"
	"testing"
	"time"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	handler.RegisterJSONFieldNames()
	os.Exit(m.Run())
}

// withPrincipal stands in for RequireAuth: requests carrying any bearer token get p.
func withPrincipal(p *usecase.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("principal", p)
		}
		c.Next()
	}
}

func newPrincipal() *usecase.Principal {
	return &usecase.Principal{
		UserID:       uuid.New(),
		Email:        "owner@example.com",
		Role:         user.RoleBusinessOwner,
		BusinessName: "Glow Studio",
		TokenID:      uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

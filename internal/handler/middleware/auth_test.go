//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/testsupport/httptest"
	usecasemock "slotbook/internal/testsupport/mock/usecase"
	"slotbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	validator *usecasemock.MockTokenValidator
	router    *gin.Engine
	principal *usecase.Principal
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.validator = usecasemock.NewMockTokenValidator(s.ctrl)
	s.principal = &usecase.Principal{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		Role:   user.RoleBusinessOwner,
	}

	m := middleware.NewAuthMiddleware(s.validator)
	s.router = gin.New()
	s.router.GET("/me", m.RequireAuth(), m.RequireRole(user.RoleBusinessOwner), func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	s.router.GET("/admin", m.RequireAuth(), m.RequireRole(user.Role("admin")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	s.router.GET("/no-auth", m.RequireRole(user.RoleBusinessOwner), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("bearer header", func() {
		s.validator.EXPECT().ValidateToken(gomock.Any(), "good-token").Return(s.principal, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal(s.principal.UserID.String(), body["user_id"])
	})

	s.Run("cookie wins over header", func() {
		s.validator.EXPECT().ValidateToken(gomock.Any(), "cookie-token").Return(s.principal, nil)

		cookies := []*http.Cookie{{Name: "access_token", Value: "cookie-token"}}
		w := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/me", nil, cookies, "header-token")

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("invalid token", func() {
		s.validator.EXPECT().ValidateToken(gomock.Any(), "bad").Return(nil, errs.ErrInvalidToken)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "bad")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("revocation lookup failure", func() {
		s.validator.EXPECT().ValidateToken(gomock.Any(), "good-token").Return(nil, errors.New("redis down"))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "good-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRole() {
	s.Run("role not allowed", func() {
		s.validator.EXPECT().ValidateToken(gomock.Any(), "good-token").Return(s.principal, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, "good-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("without RequireAuth", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/no-auth", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})
}

func TestGetPrincipalWithoutValue(t *testing.T) {
	c, _ := gin.CreateTestContext(nethttptest.NewRecorder())
	_, ok := middleware.GetPrincipal(c)
	assert.False(t, ok)
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

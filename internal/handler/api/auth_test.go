//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"slotbook/internal/domain/user"
	"slotbook/internal/handler/api"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/cookie"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/testsupport/builder"
	"slotbook/internal/testsupport/httptest"
	commandsmock "slotbook/internal/testsupport/mock/commands"
	queriesmock "slotbook/internal/testsupport/mock/queries"
	"slotbook/internal/testsupport/testutil"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	principal    *usecase.Principal
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.principal = newPrincipal()
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)

	authed := s.router.Group("/auth", withPrincipal(s.principal))
	authed.GET("/profile", s.handler.Profile)
	authed.PUT("/profile", s.handler.UpdateProfile)
	authed.PUT("/change-password", s.handler.ChangePassword)
	authed.POST("/logout", s.handler.Logout)
	authed.DELETE("/account", s.handler.DeactivateAccount)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) authResult() *commands.AuthResult {
	return &commands.AuthResult{
		Account:   builder.NewAccountBuilder().BuildView(),
		Token:     "test-jwt-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := builder.NewAccountBuilder().BuildRegisterDTO()

	s.Run("success: returns 201 with token and session cookie", func() {
		result := s.authResult()
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToInput()).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("User registered successfully", response.Message)
		s.Equal(result.Token, response.Token)
		s.Equal(result.Account.Email, response.User.Email)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal(result.Token, c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "password boundary OK (8 chars)", mutate: testutil.Field("password", "12345678"), expectCode: http.StatusCreated},
			{name: "password too short (7 chars)", mutate: testutil.Field("password", "1234567"), expectCode: http.StatusBadRequest},
			{name: "business_name too short", mutate: testutil.Field("business_name", "A"), expectCode: http.StatusBadRequest},
			{name: "business_name too long", mutate: testutil.Field("business_name", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "missing owner_name", mutate: testutil.Field("owner_name", nil), expectCode: http.StatusBadRequest},
			{name: "business_type too long", mutate: testutil.Field("business_type", strings.Repeat("b", 51)), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(s.authResult(), nil)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Validation failed")
				}
			})
		}
	})

	s.Run("error: names the offending json field", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("owner_name", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertDetailField(s.T(), body, "owner_name")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "duplicate email",
				commandsError:  errs.ErrDuplicateAccount,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "An account with this email already exists",
			},
			{
				name:           "domain validation",
				commandsError:  errs.AsValidation(errs.Field("phone", user.ErrInvalidPhone)),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAccountBuilder().BuildLoginDTO()

	s.Run("success: returns 200 OK for valid credentials", func() {
		result := s.authResult()
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Login successful", response.Message)
		s.Equal(result.Account.Email, response.User.Email)
		s.NotNil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "missing field: email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: invalid credentials map to 401", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
		s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
	})
}

func (s *AuthHandlerTestSuite) TestProfile() {
	url := "/auth/profile"

	s.Run("success: returns current user", func() {
		view := builder.NewAccountBuilder().BuildView()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.principal.UserID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Email, response.User.Email)
		s.Equal(view.Settings, response.User.Settings)
	})

	s.Run("error: returns 401 when principal missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: returns 404 for unknown account", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).Return(nil, errs.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}

func (s *AuthHandlerTestSuite) TestUpdateProfile() {
	url := "/auth/profile"

	s.Run("success: forwards only the provided fields", func() {
		view := builder.NewAccountBuilder().WithBusinessName("New Name").BuildView()
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), s.principal.UserID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p user.ProfilePatch) (*queries.AccountView, error) {
				s.Require().NotNil(p.BusinessName)
				s.Equal("New Name", *p.BusinessName)
				s.Nil(p.OwnerName)
				s.Nil(p.Settings)
				return view, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"business_name": "New Name"}, "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Profile updated successfully", response.Message)
		s.Equal("New Name", response.User.BusinessName)
	})

	s.Run("error: rejects fields an owner may not change", func() {
		for _, field := range []string{`"email":"x@example.com"`, `"role":"admin"`, `"password":"password123"`} {
			rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPut, url, "{"+field+"}", "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: settings validation surfaces as 400", func() {
		s.mockCommands.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.AsValidation(errs.Field("branding.primary_color", user.ErrInvalidColor))).Times(1)

		body := `{"settings":{"branding":{"primary_color":"blue","secondary_color":"#1E40AF"}}}`
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")
		resp := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertDetailField(s.T(), resp, "branding.primary_color")
	})
}

func (s *AuthHandlerTestSuite) TestChangePassword() {
	url := "/auth/change-password"

	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().ChangePassword(gomock.Any(), s.principal.UserID, "password123", "newpassword1").
			Return(nil).Times(1)

		body := map[string]any{"current_password": "password123", "new_password": "newpassword1"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")

		var response resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Password changed successfully", response.Message)
	})

	s.Run("error: new password too short", func() {
		body := map[string]any{"current_password": "password123", "new_password": "short"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")
		resp := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		httptest.AssertDetailField(s.T(), resp, "new_password")
	})

	s.Run("error: wrong current password", func() {
		s.mockCommands.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.ErrIncorrectPassword).Times(1)

		body := map[string]any{"current_password": "wrongpass1", "new_password": "newpassword1"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Current password is incorrect")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: revokes the token and clears the cookie", func() {
		s.mockCommands.EXPECT().Logout(gomock.Any(), s.principal).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")

		var response resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Logout successful", response.Message)

		c := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Empty(c.Value)
		s.Less(c.MaxAge, 0)
	})
}

func (s *AuthHandlerTestSuite) TestDeactivateAccount() {
	s.Run("success: deactivates and revokes", func() {
		gomock.InOrder(
			s.mockCommands.EXPECT().DeactivateAccount(gomock.Any(), s.principal.UserID).Return(nil),
			s.mockCommands.EXPECT().Logout(gomock.Any(), s.principal).Return(nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/auth/account", nil, "bearer-token")

		var response resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Account deactivated successfully", response.Message)
	})

	s.Run("success: revocation failure does not fail the request", func() {
		s.mockCommands.EXPECT().DeactivateAccount(gomock.Any(), gomock.Any()).Return(nil)
		s.mockCommands.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/auth/account", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

//go:build e2e

package bootstrap_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"slotbook/cmd/bootstrap"
	"slotbook/cmd/bootstrap/components"
	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/pkg/config"
	"slotbook/internal/testsupport/httptest"
	"slotbook/internal/testsupport/pgtest"
	"slotbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

type bookingFlowSuite struct {
	suite.Suite
	router        *gin.Engine
	notifications commands.NotificationCommands
}

func TestBookingFlowSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingFlowSuite))
}

func (s *bookingFlowSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	_, dbCfg := pgtest.NewDatabase(s.T())

	cfg := config.NewTestConfig()
	cfg.Store.Driver = config.StorePostgres
	cfg.DB = dbCfg
	cfg.Upload.Dir = s.T().TempDir()

	app := fx.New(
		fx.Provide(
			func() config.Config { return cfg },
			bootstrap.NewLocation,
			gin.New,
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.StoreModule,
		bootstrap.NotifyModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&s.router, &s.notifications),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Require().NoError(app.Start(ctx))

	s.T().Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	})
}

func (s *bookingFlowSuite) register(email string) resdto.AuthResponse {
	var auth resdto.AuthResponse
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/register", reqdto.RegisterRequest{
		Email:        email,
		Password:     "s3cret-pass",
		BusinessName: "Studio Nine",
		OwnerName:    "Sam Lee",
	}, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &auth)
	s.Require().NotEmpty(auth.Token)
	return auth
}

func (s *bookingFlowSuite) createService(token, name string) resdto.ServiceResponse {
	var created resdto.ServiceResponse
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/services", reqdto.CreateServiceRequest{
		Name:     name,
		Duration: 60,
		Price:    45,
		Category: "Hair",
	}, token)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	return created
}

func (s *bookingFlowSuite) TestRegisterLoginAndLogout() {
	s.register("owner@example.com")

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/register", reqdto.RegisterRequest{
		Email:        "OWNER@example.com",
		Password:     "another-pass",
		BusinessName: "Other",
		OwnerName:    "Other Owner",
	}, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")

	var login resdto.AuthResponse
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/login",
		reqdto.LoginRequest{Email: "owner@example.com", Password: "s3cret-pass"}, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &login)
	s.Equal("owner@example.com", login.User.Email)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/auth/profile", nil, login.Token)
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, login.Token)
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/auth/profile", nil, login.Token)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
}

func (s *bookingFlowSuite) TestPublicBookingLifecycle() {
	t := s.T()
	owner := s.register("owner@example.com")
	svc := s.createService(owner.Token, "Haircut")

	var catalogue resdto.ServiceListResponse
	rec := httptest.PerformRequest(t, s.router, http.MethodGet,
		"/api/public/businesses/"+owner.User.ID.String()+"/services", nil, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &catalogue)
	require.Len(t, catalogue.Services, 1)

	date := time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
	request := reqdto.CreatePublicBookingRequest{
		ServiceID:   svc.Service.ID,
		ClientName:  "Alex Kim",
		ClientEmail: "alex@example.com",
		ClientPhone: "+15550101010",
		Date:        date,
		Time:        "10:00",
	}

	var booked resdto.BookingResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/public/bookings", request, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &booked)
	s.Equal("Haircut", booked.Booking.ServiceName)
	s.Equal(45.0, booked.Booking.TotalAmount)

	overlapping := request
	overlapping.Time = "10:30"
	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/public/bookings", overlapping, "")
	httptest.AssertErrorResponse(t, rec, http.StatusConflict, "Selected time slot is not available")

	var list resdto.BookingListResponse
	rec = httptest.PerformRequest(t, s.router, http.MethodGet, "/api/bookings", nil, owner.Token)
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &list)
	s.Equal(1, list.Count)

	rec = httptest.PerformRequest(t, s.router, http.MethodPut,
		"/api/bookings/"+booked.Booking.ID.String()+"/cancel", reqdto.CancelBookingRequest{Reason: "client asked"}, owner.Token)
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.PerformRequest(t, s.router, http.MethodPost, "/api/public/bookings", overlapping, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, nil)

	s.Run("another owner cannot see the booking", func() {
		other := s.register("other@example.com")
		rec := httptest.PerformRequest(t, s.router, http.MethodGet,
			"/api/bookings/"+booked.Booking.ID.String(), nil, other.Token)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("outbox drains through the log transport", func() {
		report, err := s.notifications.DispatchPending(t.Context())
		s.Require().NoError(err)
		s.GreaterOrEqual(report.Claimed, 3, "created, alert and cancelled at least")
		s.Equal(report.Claimed, report.Sent)

		again, err := s.notifications.DispatchPending(t.Context())
		s.Require().NoError(err)
		s.Zero(again.Claimed)
	})
}

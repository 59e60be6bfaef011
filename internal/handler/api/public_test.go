//go:build unit

package api_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"slotbook/internal/domain/catalog"
	"slotbook/internal/handler/api"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/testsupport/builder"
	"slotbook/internal/testsupport/httptest"
	commandsmock "slotbook/internal/testsupport/mock/commands"
	queriesmock "slotbook/internal/testsupport/mock/queries"
	"slotbook/internal/testsupport/testutil"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	pdfBytes = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
)

type PublicHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockBookings *commandsmock.MockBookingCommands
	mockServices *queriesmock.MockServiceQueries
}

func (s *PublicHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockServices = queriesmock.NewMockServiceQueries(s.mockCtrl)

	cfg := config.NewTestConfig()
	cfg.Upload.MaxBytes = 1 << 10
	h := api.NewPublicHandler(s.mockBookings, s.mockServices, cfg)

	s.router.GET("/public/businesses/:business_id/services", h.Services)
	s.router.GET("/public/services/:id/availability", h.Availability)
	s.router.POST("/public/bookings", h.CreateBooking)
	s.router.POST("/public/bookings/:id/payment-proof", h.UploadPaymentProof)
}

func (s *PublicHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPublicHandlerSuite(t *testing.T) {
	suite.Run(t, new(PublicHandlerTestSuite))
}

func (s *PublicHandlerTestSuite) TestServices() {
	s.Run("success: only active services are requested", func() {
		biz := uuid.New()
		s.mockServices.EXPECT().ListServices(gomock.Any(), biz, false).
			Return([]*queries.ServiceView{builder.NewServiceBuilder().WithBusinessID(biz).BuildView()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public/businesses/"+biz.String()+"/services", nil, "")

		var response resdto.ServiceListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Count)
	})

	s.Run("error: malformed business id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public/businesses/abc/services", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid business ID format")
	})
}

func (s *PublicHandlerTestSuite) TestAvailability() {
	id := uuid.New()

	s.Run("success", func() {
		view := &queries.AvailabilityView{
			ServiceID: id,
			Date:      "2025-06-10",
			Duration:  240,
			Slots: []catalog.AvailableSlot{
				{Time: "09:00", Available: true},
				{Time: "13:00", Available: true},
			},
		}
		s.mockServices.EXPECT().Availability(gomock.Any(), id, "2025-06-10").Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public/services/"+id.String()+"/availability?date=2025-06-10", nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Availability.Slots, 2)
	})

	s.Run("error: inactive or unknown service", func() {
		s.mockServices.EXPECT().Availability(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public/services/"+id.String()+"/availability?date=2025-06-10", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Service not found")
	})
}

func (s *PublicHandlerTestSuite) TestCreateBooking() {
	url := "/public/bookings"
	reqBody := builder.NewBookingBuilder().BuildPublicDTO()

	s.Run("success: returns 201", func() {
		s.mockBookings.EXPECT().CreatePublicBooking(gomock.Any(), reqBody.ToInput()).
			Return(builder.NewBookingBuilder().BuildView(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("Booking created successfully", response.Message)
		s.Equal("pending_payment", response.Booking.Status)
	})

	s.Run("error: required fields", func() {
		for _, field := range []string{"service_id", "client_name", "client_email", "client_phone", "date", "time"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
				httptest.AssertDetailField(s.T(), body, field)
			})
		}
	})

	s.Run("error: maps booking errors", func() {
		testCases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"slot taken", errs.ErrSlotUnavailable, http.StatusConflict, "Selected time slot is not available"},
			{"past date", errs.ErrPastDate, http.StatusBadRequest, "Cannot book appointments in the past"},
			{"inactive service", errs.ErrNotFound, http.StatusNotFound, "Service not found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockBookings.EXPECT().CreatePublicBooking(gomock.Any(), gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})
}

func (s *PublicHandlerTestSuite) TestUploadPaymentProof() {
	id := uuid.New()
	url := "/public/bookings/" + id.String() + "/payment-proof"

	s.Run("success: sniffed type and full body reach the use case", func() {
		s.mockBookings.EXPECT().UploadPaymentProof(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, u commands.Upload) (*queries.BookingView, error) {
				s.Equal("receipt.pdf", u.Filename)
				s.Equal("application/pdf", u.ContentType)
				got, err := io.ReadAll(u.Body)
				s.Require().NoError(err)
				s.Equal(pdfBytes, got)
				return builder.NewBookingBuilder().BuildView(), nil
			})

		rec := httptest.PerformUpload(s.T(), s.router, url, "proof_file", "receipt.pdf", pdfBytes, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Payment proof uploaded successfully", response.Message)
	})

	s.Run("error: missing file", func() {
		rec := httptest.PerformUpload(s.T(), s.router, url, "other_field", "receipt.pdf", pdfBytes, "")
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "File is required")
		httptest.AssertDetailField(s.T(), body, "proof_file")
	})

	s.Run("error: content does not match an allowed type", func() {
		rec := httptest.PerformUpload(s.T(), s.router, url, "proof_file", "receipt.pdf", []byte("just some text"), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "File type is not allowed")
	})

	s.Run("error: extension does not match the content", func() {
		rec := httptest.PerformUpload(s.T(), s.router, url, "proof_file", "receipt.pdf", pngBytes, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "File type is not allowed")
	})

	s.Run("error: file over the limit", func() {
		big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 2<<10)...)
		rec := httptest.PerformUpload(s.T(), s.router, url, "proof_file", "receipt.png", big, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusRequestEntityTooLarge, "File too large")
	})

	s.Run("error: terminal booking", func() {
		s.mockBookings.EXPECT().UploadPaymentProof(gomock.Any(), id, gomock.Any()).Return(nil, errs.ErrInvalidTransition)

		rec := httptest.PerformUpload(s.T(), s.router, url, "proof_file", "receipt.png", pngBytes, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid status transition")
	})
}

package api

import (
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated client-facing booking flow.
type PublicHandler struct {
	bookings commands.BookingCommands
	services queries.ServiceQueries
	maxBytes int64
}

func NewPublicHandler(bookings commands.BookingCommands, services queries.ServiceQueries, cfg config.Config) *PublicHandler {
	return &PublicHandler{bookings: bookings, services: services, maxBytes: cfg.Upload.MaxBytes}
}

// @Summary Public service list
// @Description Active services of one business, by name
// @Tags public
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {object} resdto.ServiceListResponse
// @Router /public/businesses/{business_id}/services [get]
func (h *PublicHandler) Services(c *gin.Context) {
	businessID, ok := pathID(c, "business_id", "business")
	if !ok {
		return
	}
	views, err := h.services.ListServices(c.Request.Context(), businessID, false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewServiceList(views))
}

// @Summary Service availability
// @Description Slots from 09:00 to 17:00 stepped by the service duration
// @Tags public
// @Produce json
// @Param id path string true "Service ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /public/services/{id}/availability [get]
func (h *PublicHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	view, err := h.services.Availability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		httperr.Respond(c, err, serviceNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Availability: view})
}

// @Summary Book an appointment
// @Description Service name, duration and price are taken from the catalog
// @Tags public
// @Accept json
// @Produce json
// @Param request body reqdto.CreatePublicBookingRequest true "Booking"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /public/bookings [post]
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreatePublicBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.bookings.CreatePublicBooking(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err, serviceNotFound)
		return
	}
	c.JSON(http.StatusCreated, resdto.BookingResponse{Message: "Booking created successfully", Booking: view})
}

// @Summary Upload payment proof
// @Tags public
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param proof_file formData file true "JPG, PNG or PDF"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Router /public/bookings/{id}/payment-proof [post]
func (h *PublicHandler) UploadPaymentProof(c *gin.Context) {
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}
	upload, closeFn, ok := readUpload(c, "proof_file", h.maxBytes, proofTypes)
	if !ok {
		return
	}
	defer closeFn()

	view, err := h.bookings.UploadPaymentProof(c.Request.Context(), id, upload)
	if err != nil {
		httperr.Respond(c, err, bookingNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingResponse{Message: "Payment proof uploaded successfully", Booking: view})
}

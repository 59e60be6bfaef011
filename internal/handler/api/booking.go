package api

import (
	"fmt"
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bookingNotFound = "Booking not found"

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary List bookings
// @Description Filter by status (comma separated), date, start_date/end_date and service_id
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "Statuses"
// @Param date query string false "YYYY-MM-DD"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param service_id query string false "Service ID"
// @Success 200 {object} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var query reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	views, err := h.q.ListBookings(c.Request.Context(), principal.UserID, query.ToFilter())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewBookingList(views))
}

// @Summary Get booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), principal.UserID, id)
	if err != nil {
		httperr.Respond(c, err, bookingNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingResponse{Booking: view})
}

// @Summary Booking statistics
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} resdto.BookingStatsResponse
// @Router /bookings/stats [get]
func (h *BookingHandler) Stats(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var query reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), principal.UserID, nonEmpty(query.StartDate), nonEmpty(query.EndDate))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingStatsResponse{Stats: stats})
}

// @Summary Bookings due a reminder
// @Description Confirmed bookings without a reminder that start within the reminder window
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.BookingListResponse
// @Router /bookings/reminders/due [get]
func (h *BookingHandler) RemindersDue(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	views, err := h.q.RemindersDue(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewBookingList(views))
}

// @Summary Export bookings
// @Description Accepts the list filters plus format=json|csv|pdf
// @Tags bookings
// @Security BearerAuth
// @Produce json,text/csv,application/pdf
// @Param format query string false "json, csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} httperr.Response
// @Router /bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var query reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	format := query.Format
	if format == "" {
		format = "json"
	}
	file, err := h.q.Export(c.Request.Context(), principal.UserID, query.ToFilter(), format)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// @Summary Update booking status
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "Status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	h.mutate(c, "Booking status updated successfully", func(c *gin.Context, biz, id uuid.UUID) (*queries.BookingView, bool, error) {
		var req reqdto.UpdateStatusRequest
		if !bindJSON(c, &req) {
			return nil, false, nil
		}
		view, err := h.cmds.UpdateStatus(c.Request.Context(), biz, id, req.Status)
		return view, true, err
	})
}

// @Summary Verify payment
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.VerifyPaymentRequest true "Verification"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/verify-payment [put]
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	h.mutate(c, "Payment verification updated", func(c *gin.Context, biz, id uuid.UUID) (*queries.BookingView, bool, error) {
		var req reqdto.VerifyPaymentRequest
		if !bindJSON(c, &req) {
			return nil, false, nil
		}
		view, err := h.cmds.VerifyPayment(c.Request.Context(), biz, id, *req.Verified)
		return view, true, err
	})
}

// @Summary Cancel booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.mutate(c, "Booking cancelled successfully", func(c *gin.Context, biz, id uuid.UUID) (*queries.BookingView, bool, error) {
		var req reqdto.CancelBookingRequest
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return nil, false, nil
		}
		view, err := h.cmds.CancelBooking(c.Request.Context(), biz, id, req.Reason)
		return view, true, err
	})
}

// @Summary Reschedule booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleRequest true "New date and time"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reschedule [put]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	h.mutate(c, "Booking rescheduled successfully", func(c *gin.Context, biz, id uuid.UUID) (*queries.BookingView, bool, error) {
		var req reqdto.RescheduleRequest
		if !bindJSON(c, &req) {
			return nil, false, nil
		}
		view, err := h.cmds.RescheduleBooking(c.Request.Context(), biz, id, req.Date, req.Time)
		return view, true, err
	})
}

// @Summary Mark reminder sent
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Router /bookings/{id}/reminder-sent [put]
func (h *BookingHandler) MarkReminderSent(c *gin.Context) {
	h.mutate(c, "Reminder marked as sent", func(c *gin.Context, biz, id uuid.UUID) (*queries.BookingView, bool, error) {
		view, err := h.cmds.MarkReminderSent(c.Request.Context(), biz, id)
		return view, true, err
	})
}

// mutate resolves the owner and booking id, then runs fn. fn reports false when it already aborted.
func (h *BookingHandler) mutate(
	c *gin.Context,
	successMsg string,
	fn func(c *gin.Context, businessID, bookingID uuid.UUID) (*queries.BookingView, bool, error),
) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "booking")
	if !ok {
		return
	}
	view, ran, err := fn(c, principal.UserID, id)
	if !ran {
		return
	}
	if err != nil {
		httperr.Respond(c, err, bookingNotFound)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingResponse{Message: successMsg, Booking: view})
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

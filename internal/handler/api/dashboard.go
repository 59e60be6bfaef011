package api

import (
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	defaultAnalyticsPeriod = 30
	defaultRevenuePeriod   = 365
)

type DashboardHandler struct {
	q    queries.DashboardQueries
	auth commands.AuthCommands
}

func NewDashboardHandler(q queries.DashboardQueries, auth commands.AuthCommands) *DashboardHandler {
	return &DashboardHandler{q: q, auth: auth}
}

// @Summary Dashboard overview
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} resdto.OverviewResponse
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var query reqdto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}
	var dr *queries.DateRange
	if query.StartDate != "" && query.EndDate != "" {
		dr = &queries.DateRange{StartDate: query.StartDate, EndDate: query.EndDate}
	}
	view, err := h.q.Overview(c.Request.Context(), principal.UserID, dr)
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.OverviewResponse{Overview: view})
}

// @Summary Booking analytics
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param period query int false "Days, 1-365 (default 30)"
// @Success 200 {object} resdto.BookingAnalyticsResponse
// @Failure 400 {object} httperr.Response
// @Router /dashboard/analytics/bookings [get]
func (h *DashboardHandler) BookingAnalytics(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	period, ok := periodParam(c, defaultAnalyticsPeriod)
	if !ok {
		return
	}
	view, err := h.q.BookingAnalytics(c.Request.Context(), principal.UserID, period)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingAnalyticsResponse{Analytics: view})
}

// @Summary Revenue analytics
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param period query int false "Days, 1-365 (default 365)"
// @Success 200 {object} resdto.RevenueAnalyticsResponse
// @Router /dashboard/analytics/revenue [get]
func (h *DashboardHandler) RevenueAnalytics(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	period, ok := periodParam(c, defaultRevenuePeriod)
	if !ok {
		return
	}
	view, err := h.q.RevenueAnalytics(c.Request.Context(), principal.UserID, period)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RevenueAnalyticsResponse{Analytics: view})
}

// @Summary Notification feed
// @Description Pending bookings and tomorrow's appointments, newest first
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.NotificationFeed
// @Router /dashboard/notifications [get]
func (h *DashboardHandler) Notifications(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	feed, err := h.q.Notifications(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkNotificationRead acknowledges the call; feed items are derived, so there is no read state to store.
//
// @Summary Mark notification read
// @Tags dashboard
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} resdto.MessageResponse
// @Router /dashboard/notifications/{id}/read [put]
func (h *DashboardHandler) MarkNotificationRead(c *gin.Context) {
	if _, ok := currentPrincipal(c); !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Notification marked as read"})
}

// @Summary Get settings
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.SettingsResponse
// @Router /dashboard/settings [get]
func (h *DashboardHandler) Settings(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	settings, err := h.q.Settings(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.SettingsResponse{Settings: settings})
}

// @Summary Update settings
// @Description Sections present in the body replace the stored ones
// @Tags dashboard
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.SettingsRequest true "Settings"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Router /dashboard/settings [put]
func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req reqdto.SettingsRequest
	if !bindStrict(c, &req) {
		return
	}
	view, err := h.auth.UpdateSettings(c.Request.Context(), principal.UserID, req.ToPatch())
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.SettingsResponse{Message: "Settings updated successfully", Settings: &view.Settings})
}

func periodParam(c *gin.Context, fallback int) (int, bool) {
	var query reqdto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return 0, false
	}
	if query.Period == 0 {
		return fallback, true
	}
	return query.Period, true
}

package response

import (
	"slotbook/internal/domain/user"
	"slotbook/internal/usecase/queries"
)

type OverviewResponse struct {
	Overview *queries.OverviewView `json:"overview"`
}

type BookingAnalyticsResponse struct {
	Analytics *queries.BookingAnalyticsView `json:"analytics"`
}

type RevenueAnalyticsResponse struct {
	Analytics *queries.RevenueAnalyticsView `json:"analytics"`
}

type SettingsResponse struct {
	Message  string         `json:"message,omitempty"`
	Settings *user.Settings `json:"settings"`
}

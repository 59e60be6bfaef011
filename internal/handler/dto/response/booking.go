package response

import (
	"slotbook/internal/domain/booking"
	"slotbook/internal/usecase/queries"
)

type BookingResponse struct {
	Message string               `json:"message,omitempty"`
	Booking *queries.BookingView `json:"booking"`
}

type BookingListResponse struct {
	Bookings []*queries.BookingView `json:"bookings"`
	Count    int                    `json:"count"`
}

func NewBookingList(bookings []*queries.BookingView) BookingListResponse {
	if bookings == nil {
		bookings = []*queries.BookingView{}
	}
	return BookingListResponse{Bookings: bookings, Count: len(bookings)}
}

type BookingStatsResponse struct {
	Stats *booking.Stats `json:"stats"`
}

type UploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

package request

import (
	"strings"

	"slotbook/internal/domain/booking"
	"slotbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePublicBookingRequest struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientEmail string    `json:"client_email" binding:"required"`
	ClientPhone string    `json:"client_phone" binding:"required"`
	Date        string    `json:"date" binding:"required"`
	Time        string    `json:"time" binding:"required"`
	Notes       string    `json:"notes"`
}

func (r CreatePublicBookingRequest) ToInput() commands.PublicBookingInput {
	return commands.PublicBookingInput{
		ServiceID:   r.ServiceID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Date:        r.Date,
		Time:        r.Time,
		Notes:       r.Notes,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type VerifyPaymentRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// BookingListQuery binds the list and export filters from the query string.
type BookingListQuery struct {
	Status    string `form:"status"`
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	ServiceID string `form:"service_id" binding:"omitempty,uuid"`
	Format    string `form:"format"`
}

// ToFilter accepts a comma separated status list.
func (q BookingListQuery) ToFilter() booking.Filter {
	var f booking.Filter
	if q.Status != "" {
		for _, s := range strings.Split(q.Status, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Statuses = append(f.Statuses, booking.Status(s))
			}
		}
	}
	f.Date = optional(q.Date)
	f.StartDate = optional(q.StartDate)
	f.EndDate = optional(q.EndDate)
	if id, err := uuid.Parse(q.ServiceID); err == nil {
		f.ServiceID = &id
	}
	return f
}

type DateRangeQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type PeriodQuery struct {
	Period int `form:"period"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

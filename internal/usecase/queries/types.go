package queries

import (
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/user"

	"github.com/google/uuid"
)

// AccountView is the sanitized account; the password hash never leaves the use case layer.
type AccountView struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	BusinessName string        `json:"business_name"`
	OwnerName    string        `json:"owner_name"`
	Phone        string        `json:"phone"`
	BusinessType string        `json:"business_type,omitempty"`
	Role         string        `json:"role"`
	IsActive     bool          `json:"is_active"`
	Settings     user.Settings `json:"settings"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func NewAccountView(a *user.Account) *AccountView {
	p := a.Profile()
	return &AccountView{
		ID:           a.ID(),
		Email:        a.Email().Value(),
		BusinessName: p.BusinessName,
		OwnerName:    p.OwnerName,
		Phone:        p.Phone,
		BusinessType: p.BusinessType,
		Role:         a.Role().String(),
		IsActive:     a.IsActive(),
		Settings:     a.Settings(),
		LastLoginAt:  a.LastLoginAt(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	BusinessID  uuid.UUID `json:"business_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewServiceView(s *catalog.Service) *ServiceView {
	return &ServiceView{
		ID:          s.ID(),
		BusinessID:  s.BusinessID(),
		Name:        s.Name(),
		Description: s.Description(),
		Duration:    s.Duration(),
		Price:       s.Price(),
		Category:    s.Category(),
		IsActive:    s.IsActive(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func NewServiceViews(services []*catalog.Service) []*ServiceView {
	out := make([]*ServiceView, 0, len(services))
	for _, s := range services {
		out = append(out, NewServiceView(s))
	}
	return out
}

type BookingView struct {
	ID                 uuid.UUID `json:"id"`
	BusinessID         uuid.UUID `json:"business_id"`
	ServiceID          uuid.UUID `json:"service_id"`
	ServiceName        string    `json:"service_name"`
	ClientName         string    `json:"client_name"`
	ClientEmail        string    `json:"client_email"`
	ClientPhone        string    `json:"client_phone"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Duration           int       `json:"duration"`
	TotalAmount        float64   `json:"total_amount"`
	Notes              string    `json:"notes,omitempty"`
	Status             string    `json:"status"`
	PaymentProof       *string   `json:"payment_proof"`
	PaymentVerified    bool      `json:"payment_verified"`
	ReminderSent       bool      `json:"reminder_sent"`
	ConfirmationSent   bool      `json:"confirmation_sent"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	s := b.Snapshot()
	return &BookingView{
		ID:                 s.ID,
		BusinessID:         s.BusinessID,
		ServiceID:          s.ServiceID,
		ServiceName:        s.ServiceName,
		ClientName:         s.ClientName,
		ClientEmail:        s.ClientEmail,
		ClientPhone:        s.ClientPhone,
		Date:               s.Date,
		Time:               s.Time,
		Duration:           s.Duration,
		TotalAmount:        s.TotalAmount,
		Notes:              s.Notes,
		Status:             s.Status.String(),
		PaymentProof:       s.PaymentProof,
		PaymentVerified:    s.PaymentVerified,
		ReminderSent:       s.ReminderSent,
		ConfirmationSent:   s.ConfirmationSent,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func NewBookingViews(bookings []*booking.Booking) []*BookingView {
	out := make([]*BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingView(b))
	}
	return out
}

// AvailabilityView lists candidate start times for one service on one date.
type AvailabilityView struct {
	ServiceID uuid.UUID               `json:"service_id"`
	Date      string                  `json:"date"`
	Duration  int                     `json:"duration"`
	Slots     []catalog.AvailableSlot `json:"available_slots"`
}

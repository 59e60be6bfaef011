package booking

import (
	"sort"
	"time"

	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// EnsureSlotFree rejects candidate when it overlaps a non-cancelled booking on the same date.
// existing is expected to hold one business's bookings; excludeID skips the booking being moved.
func EnsureSlotFree(candidate Slot, existing []*Booking, excludeID uuid.UUID) error {
	for _, b := range existing {
		if b.id == excludeID || b.status == StatusCancelled {
			continue
		}
		if candidate.Overlaps(b.slot) {
			return errs.ErrSlotUnavailable
		}
	}
	return nil
}

// Filter narrows a business's bookings; nil fields match everything.
type Filter struct {
	Statuses  []Status
	Date      *string
	StartDate *string
	EndDate   *string
	ServiceID *uuid.UUID
}

func (f Filter) Matches(b *Booking) bool {
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if b.status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Date != nil && b.slot.date != *f.Date {
		return false
	}
	if f.StartDate != nil && b.slot.date < *f.StartDate {
		return false
	}
	if f.EndDate != nil && b.slot.date > *f.EndDate {
		return false
	}
	if f.ServiceID != nil && b.serviceID != *f.ServiceID {
		return false
	}
	return true
}

func Apply(bookings []*Booking, f Filter) []*Booking {
	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	SortBySchedule(out)
	return out
}

// SortBySchedule orders by (date, time); YYYY-MM-DD compares correctly as a string.
func SortBySchedule(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i].slot, bookings[j].slot
		if a.date != b.date {
			return a.date < b.date
		}
		return a.start < b.start
	})
}

func SortByCreatedDesc(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].createdAt.After(bookings[j].createdAt)
	})
}

type Stats struct {
	Total               int     `json:"total"`
	PendingPayment      int     `json:"pending_payment"`
	PendingVerification int     `json:"pending_verification"`
	Confirmed           int     `json:"confirmed"`
	Completed           int     `json:"completed"`
	Cancelled           int     `json:"cancelled"`
	TotalRevenue        float64 `json:"total_revenue"`
}

func Summarize(bookings []*Booking) Stats {
	var st Stats
	for _, b := range bookings {
		st.Total++
		switch b.status {
		case StatusPendingPayment:
			st.PendingPayment++
		case StatusPendingVerification:
			st.PendingVerification++
		case StatusConfirmed:
			st.Confirmed++
		case StatusCompleted:
			st.Completed++
		case StatusCancelled:
			st.Cancelled++
		}
		if b.status.EarnsRevenue() {
			st.TotalRevenue += b.totalAmount
		}
	}
	return st
}

func DueReminders(bookings []*Booking, now time.Time, loc *time.Location, window time.Duration) []*Booking {
	var out []*Booking
	for _, b := range bookings {
		if b.ReminderDue(now, loc, window) {
			out = append(out, b)
		}
	}
	SortBySchedule(out)
	return out
}

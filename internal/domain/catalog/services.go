package catalog

import (
	"fmt"
	"sort"
	"strings"

	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// EnsureUniqueName fails when another active service of the business already uses name.
func EnsureUniqueName(name string, candidates []*Service, excludeID uuid.UUID) error {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range candidates {
		if s.id == excludeID || !s.active {
			continue
		}
		if strings.ToLower(s.name) == want {
			return errs.ErrDuplicateService
		}
	}
	return nil
}

func SortByName(services []*Service) {
	sort.SliceStable(services, func(i, j int) bool {
		return strings.ToLower(services[i].name) < strings.ToLower(services[j].name)
	})
}

func ActiveOnly(services []*Service) []*Service {
	out := make([]*Service, 0, len(services))
	for _, s := range services {
		if s.active {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the distinct categories of active services in name order.
func Categories(services []*Service) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range services {
		if !s.active {
			continue
		}
		if _, ok := seen[s.category]; ok {
			continue
		}
		seen[s.category] = struct{}{}
		out = append(out, s.category)
	}
	sort.Strings(out)
	return out
}

// Popular returns up to limit active services, newest first.
func Popular(services []*Service, limit int) []*Service {
	active := ActiveOnly(services)
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].createdAt.After(active[j].createdAt)
	})
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active
}

type Stats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Inactive        int     `json:"inactive"`
	Categories      int     `json:"categories"`
	AveragePrice    float64 `json:"average_price"`
	AverageDuration float64 `json:"average_duration"`
}

// Summarize aggregates over every service regardless of the active flag.
func Summarize(services []*Service) Stats {
	st := Stats{Total: len(services)}
	if len(services) == 0 {
		return st
	}
	var price float64
	var duration int
	for _, s := range services {
		if s.active {
			st.Active++
		} else {
			st.Inactive++
		}
		price += s.price
		duration += s.duration
	}
	// category count follows the category listing, which shows active services only
	st.Categories = len(Categories(services))
	st.AveragePrice = price / float64(len(services))
	st.AverageDuration = float64(duration) / float64(len(services))
	return st
}

const (
	availabilityOpen  = 9 * 60
	availabilityClose = 17 * 60
)

type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Availability lists candidate start times from 09:00 until 17:00 stepped by the service
// duration. Existing bookings are not subtracted; booking creation runs the real conflict check.
func (s *Service) Availability() []AvailableSlot {
	if s.duration <= 0 {
		return nil
	}
	var slots []AvailableSlot
	for m := availabilityOpen; m < availabilityClose; m += s.duration {
		slots = append(slots, AvailableSlot{
			Time:      fmt.Sprintf("%02d:%02d", m/60, m%60),
			Available: true,
		})
	}
	return slots
}

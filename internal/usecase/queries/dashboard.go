package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/catalog"
	"slotbook/internal/domain/user"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultAnalyticsPeriod = 30
	MaxAnalyticsPeriod     = 365
	recentBookingsLimit    = 5
	revenueTrendMonths     = 12
)

var ErrInvalidPeriod = errs.New("period must be between 1 and 365 days")

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type OverviewView struct {
	BookingStats    booking.Stats  `json:"booking_stats"`
	ServiceStats    catalog.Stats  `json:"service_stats"`
	User            *AccountView   `json:"user"`
	RecentBookings  []*BookingView `json:"recent_bookings"`
	PopularServices []*ServiceView `json:"popular_services"`
	DateRange       *DateRange     `json:"date_range"`
}

type DailyBookings struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ServicePerformance struct {
	ServiceID         uuid.UUID `json:"service_id"`
	ServiceName       string    `json:"service_name"`
	TotalBookings     int       `json:"total_bookings"`
	ConfirmedBookings int       `json:"confirmed_bookings"`
	Revenue           float64   `json:"revenue"`
}

type BookingAnalyticsView struct {
	Period             int                  `json:"period"`
	DateRange          DateRange            `json:"date_range"`
	BookingStats       booking.Stats        `json:"booking_stats"`
	DailyBookings      []DailyBookings      `json:"daily_bookings"`
	ServicePerformance []ServicePerformance `json:"service_performance"`
}

type MonthlyRevenue struct {
	Month     string  `json:"month"`
	MonthName string  `json:"month_name"`
	Revenue   float64 `json:"revenue"`
	Bookings  int     `json:"bookings"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type RevenueAnalyticsView struct {
	Period            int               `json:"period"`
	DateRange         DateRange         `json:"date_range"`
	TotalRevenue      float64           `json:"total_revenue"`
	MonthlyRevenue    []MonthlyRevenue  `json:"monthly_revenue"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
}

type NotificationItem struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Data      *BookingView `json:"data"`
	Timestamp time.Time    `json:"timestamp"`
	Read      bool         `json:"read"`
}

type NotificationFeed struct {
	Notifications []NotificationItem `json:"notifications"`
	Count         int                `json:"count"`
	UnreadCount   int                `json:"unread_count"`
}

type DashboardQueries interface {
	Overview(ctx context.Context, businessID uuid.UUID, dateRange *DateRange) (*OverviewView, error)
	BookingAnalytics(ctx context.Context, businessID uuid.UUID, period int) (*BookingAnalyticsView, error)
	RevenueAnalytics(ctx context.Context, businessID uuid.UUID, period int) (*RevenueAnalyticsView, error)
	Notifications(ctx context.Context, businessID uuid.UUID) (*NotificationFeed, error)
	Settings(ctx context.Context, businessID uuid.UUID) (*user.Settings, error)
}

type dashboardQueriesImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	location *time.Location
}

func NewDashboardQueries(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) DashboardQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardQueriesImpl{uow: uow, clock: clk, location: loc}
}

// snapshot is everything a dashboard view derives from, read in one transaction.
type snapshot struct {
	owner    *user.Account
	services []*catalog.Service
	bookings []*booking.Booking
}

func (q *dashboardQueriesImpl) load(ctx context.Context, businessID uuid.UUID) (*snapshot, error) {
	s := &snapshot{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if s.owner, err = tx.Users().FindByID(ctx, businessID); err != nil {
			return shared.StoreErr(err)
		}
		if s.services, err = tx.Services().ListByBusiness(ctx, businessID); err != nil {
			return shared.StoreErr(err)
		}
		s.bookings, err = tx.Bookings().ListByBusiness(ctx, businessID)
		return shared.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (q *dashboardQueriesImpl) Overview(ctx context.Context, businessID uuid.UUID, dateRange *DateRange) (*OverviewView, error) {
	s, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	scoped := s.bookings
	if dateRange != nil {
		scoped = booking.Apply(s.bookings, booking.Filter{StartDate: &dateRange.StartDate, EndDate: &dateRange.EndDate})
	}

	recent := append([]*booking.Booking(nil), s.bookings...)
	booking.SortByCreatedDesc(recent)
	if len(recent) > recentBookingsLimit {
		recent = recent[:recentBookingsLimit]
	}

	return &OverviewView{
		BookingStats:    booking.Summarize(scoped),
		ServiceStats:    catalog.Summarize(s.services),
		User:            NewAccountView(s.owner),
		RecentBookings:  NewBookingViews(recent),
		PopularServices: NewServiceViews(catalog.Popular(s.services, PopularServicesLimit)),
		DateRange:       dateRange,
	}, nil
}

func (q *dashboardQueriesImpl) BookingAnalytics(ctx context.Context, businessID uuid.UUID, period int) (*BookingAnalyticsView, error) {
	dr, err := q.periodRange(period)
	if err != nil {
		return nil, err
	}
	s, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	inRange := booking.Apply(s.bookings, booking.Filter{StartDate: &dr.StartDate, EndDate: &dr.EndDate})
	byDate := make(map[string]*DailyBookings)
	for _, b := range inRange {
		d := byDate[b.Slot().Date()]
		if d == nil {
			d = &DailyBookings{Date: b.Slot().Date()}
			byDate[d.Date] = d
		}
		d.Count++
		if b.Status().EarnsRevenue() {
			d.Revenue += b.TotalAmount()
		}
	}

	start, _ := time.ParseInLocation(booking.DateLayout, dr.StartDate, q.location)
	daily := make([]DailyBookings, 0, period+1)
	for day := start; day.Format(booking.DateLayout) <= dr.EndDate; day = day.AddDate(0, 0, 1) {
		key := day.Format(booking.DateLayout)
		if d, ok := byDate[key]; ok {
			daily = append(daily, *d)
		} else {
			daily = append(daily, DailyBookings{Date: key})
		}
	}

	perf := make([]ServicePerformance, 0, len(s.services))
	for _, svc := range s.services {
		p := ServicePerformance{ServiceID: svc.ID(), ServiceName: svc.Name()}
		for _, b := range s.bookings {
			if b.ServiceID() != svc.ID() {
				continue
			}
			p.TotalBookings++
			if b.Status().EarnsRevenue() {
				p.ConfirmedBookings++
				p.Revenue += b.TotalAmount()
			}
		}
		perf = append(perf, p)
	}

	return &BookingAnalyticsView{
		Period:             period,
		DateRange:          dr,
		BookingStats:       booking.Summarize(inRange),
		DailyBookings:      daily,
		ServicePerformance: perf,
	}, nil
}

func (q *dashboardQueriesImpl) RevenueAnalytics(ctx context.Context, businessID uuid.UUID, period int) (*RevenueAnalyticsView, error) {
	dr, err := q.periodRange(period)
	if err != nil {
		return nil, err
	}
	s, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now().In(q.location)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, q.location).AddDate(0, -(revenueTrendMonths - 1), 0)
	monthly := make([]MonthlyRevenue, 0, revenueTrendMonths)
	index := make(map[string]int, revenueTrendMonths)
	for i := 0; i < revenueTrendMonths; i++ {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		index[key] = i
		monthly = append(monthly, MonthlyRevenue{Month: key, MonthName: m.Format("January 2006")})
	}

	categoryOf := make(map[uuid.UUID]string, len(s.services))
	for _, svc := range s.services {
		categoryOf[svc.ID()] = svc.Category()
	}
	byCategory := make(map[string]*CategoryRevenue)
	for _, c := range catalog.Categories(s.services) {
		byCategory[c] = &CategoryRevenue{Category: c}
	}

	for _, b := range s.bookings {
		if !b.Status().EarnsRevenue() {
			continue
		}
		if len(b.Slot().Date()) >= 7 {
			if i, ok := index[b.Slot().Date()[:7]]; ok {
				monthly[i].Revenue += b.TotalAmount()
				monthly[i].Bookings++
			}
		}
		if c, ok := byCategory[categoryOf[b.ServiceID()]]; ok {
			c.Revenue += b.TotalAmount()
			c.Bookings++
		}
	}

	categories := make([]CategoryRevenue, 0, len(byCategory))
	for _, c := range byCategory {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	inRange := booking.Apply(s.bookings, booking.Filter{StartDate: &dr.StartDate, EndDate: &dr.EndDate})
	return &RevenueAnalyticsView{
		Period:            period,
		DateRange:         dr,
		TotalRevenue:      booking.Summarize(inRange).TotalRevenue,
		MonthlyRevenue:    monthly,
		RevenueByCategory: categories,
	}, nil
}

// Notifications lists open bookings and tomorrow's appointments, newest first. Nothing is persisted,
// so every item is unread.
func (q *dashboardQueriesImpl) Notifications(ctx context.Context, businessID uuid.UUID) (*NotificationFeed, error) {
	s, err := q.load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	tomorrow := now.In(q.location).AddDate(0, 0, 1).Format(booking.DateLayout)

	var items []NotificationItem
	for _, b := range s.bookings {
		if b.Status() == booking.StatusPendingPayment || b.Status() == booking.StatusPendingVerification {
			items = append(items, NotificationItem{
				ID:        "booking-" + b.ID().String(),
				Type:      "new_booking",
				Title:     "New Booking",
				Message:   fmt.Sprintf("%s booked %s for %s at %s", b.Client().Name(), b.ServiceName(), displayDate(b.Slot().Date()), b.Slot().Time()),
				Data:      NewBookingView(b),
				Timestamp: b.CreatedAt(),
			})
		}
	}
	for _, b := range s.bookings {
		if b.Slot().Date() == tomorrow {
			items = append(items, NotificationItem{
				ID:        "upcoming-" + b.ID().String(),
				Type:      "upcoming_appointment",
				Title:     "Upcoming Appointment",
				Message:   fmt.Sprintf("%s has an appointment tomorrow at %s", b.Client().Name(), b.Slot().Time()),
				Data:      NewBookingView(b),
				Timestamp: now,
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })

	if items == nil {
		items = []NotificationItem{}
	}
	return &NotificationFeed{Notifications: items, Count: len(items), UnreadCount: len(items)}, nil
}

func (q *dashboardQueriesImpl) Settings(ctx context.Context, businessID uuid.UUID) (*user.Settings, error) {
	var settings user.Settings
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		acc, err := tx.Users().FindByID(ctx, businessID)
		if err != nil {
			return shared.StoreErr(err)
		}
		if !acc.IsActive() {
			return errs.ErrNotFound
		}
		settings = acc.Settings()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// periodRange covers the last period days up to and including today.
func (q *dashboardQueriesImpl) periodRange(period int) (DateRange, error) {
	if period < 1 || period > MaxAnalyticsPeriod {
		return DateRange{}, errs.AsValidation(errs.Field("period", ErrInvalidPeriod))
	}
	today := q.clock.Now().In(q.location)
	return DateRange{
		StartDate: today.AddDate(0, 0, -period).Format(booking.DateLayout),
		EndDate:   today.Format(booking.DateLayout),
	}, nil
}

func displayDate(date string) string {
	t, err := time.Parse(booking.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

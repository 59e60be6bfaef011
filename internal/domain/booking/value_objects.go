package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"slotbook/internal/pkg/errs"
)

const (
	DateLayout = "2006-01-02"

	MinClientNameLength = 2
	MaxClientNameLength = 100
	MaxNotesLength      = 500
)

var (
	ErrInvalidClientName = errors.New("client name must be between 2 and 100 characters")
	ErrInvalidEmail      = errors.New("please provide a valid email address")
	ErrInvalidPhone      = errors.New("please provide a valid phone number")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime       = errors.New("time must be HH:MM")
	ErrInvalidDuration   = errors.New("duration must be greater than 0")
	ErrInvalidAmount     = errors.New("total amount must be greater than 0")
	ErrNotesTooLong      = errors.New("notes must be at most 500 characters")
	ErrMissingService    = errors.New("service is required")
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	timeRegex  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

type Client struct {
	name  string
	email string
	phone string
}

func NewClient(name, email, phone string) (Client, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if n := utf8.RuneCountInString(name); n < MinClientNameLength || n > MaxClientNameLength {
		return Client{}, errs.Field("client_name", ErrInvalidClientName)
	}
	if !emailRegex.MatchString(email) {
		return Client{}, errs.Field("client_email", ErrInvalidEmail)
	}
	if !phoneRegex.MatchString(strings.Join(strings.Fields(phone), "")) {
		return Client{}, errs.Field("client_phone", ErrInvalidPhone)
	}
	return Client{name: name, email: email, phone: phone}, nil
}

func (c Client) Name() string  { return c.name }
func (c Client) Email() string { return c.email }
func (c Client) Phone() string { return c.phone }

// Slot is a [start, start+duration) interval on a calendar date, in minutes since midnight.
type Slot struct {
	date     string
	start    int
	duration int
}

func NewSlot(date, clock string, duration int) (Slot, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Slot{}, errs.Field("date", ErrInvalidDate)
	}
	start, err := parseClock(clock)
	if err != nil {
		return Slot{}, err
	}
	if duration <= 0 {
		return Slot{}, errs.Field("duration", ErrInvalidDuration)
	}
	return Slot{date: date, start: start, duration: duration}, nil
}

func parseClock(clock string) (int, error) {
	m := timeRegex.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, errs.Field("time", ErrInvalidTime)
	}
	var h, mm int
	_, _ = fmt.Sscanf(m[1], "%d", &h)
	_, _ = fmt.Sscanf(m[2], "%d", &mm)
	return h*60 + mm, nil
}

// StartTime resolves a date and clock time in loc. ok is false when either part is malformed.
func StartTime(date, clock string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	start, err := parseClock(clock)
	if err != nil {
		return time.Time{}, false
	}
	return d.Add(time.Duration(start) * time.Minute), true
}

func (s Slot) Date() string     { return s.date }
func (s Slot) Duration() int    { return s.duration }
func (s Slot) StartMinute() int { return s.start }
func (s Slot) EndMinute() int   { return s.start + s.duration }

func (s Slot) Time() string {
	return fmt.Sprintf("%02d:%02d", s.start/60, s.start%60)
}

// Overlaps applies the half-open interval test; slots on different dates never overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.date == o.date && s.start < o.EndMinute() && s.EndMinute() > o.start
}

func (s Slot) StartsAt(loc *time.Location) time.Time {
	t, _ := StartTime(s.date, s.Time(), loc)
	return t
}

// WithDateTime keeps the duration and moves the slot.
func (s Slot) WithDateTime(date, clock string) (Slot, error) {
	return NewSlot(date, clock, s.duration)
}

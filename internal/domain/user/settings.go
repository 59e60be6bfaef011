package user

import (
	"errors"
	"regexp"

	"slotbook/internal/pkg/errs"
)

var (
	ErrInvalidWorkingHours = errors.New("working hours must be HH:MM with start before end")
	ErrUnknownWeekday      = errors.New("unknown weekday")
	ErrInvalidReminderTime = errors.New("reminder time must be between 5 and 1440 minutes")
	ErrInvalidColor        = errors.New("color must be a #RRGGBB hex value")
)

var (
	clockRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type DayHours struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	IsOpen bool   `json:"is_open"`
}

type NotificationSettings struct {
	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	ReminderTime       int  `json:"reminder_time"`
}

type Branding struct {
	Logo           *string `json:"logo"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
}

type Settings struct {
	WorkingHours         map[string]DayHours  `json:"working_hours"`
	NotificationSettings NotificationSettings `json:"notification_settings"`
	Branding             Branding             `json:"branding"`
}

func DefaultSettings() Settings {
	hours := make(map[string]DayHours, len(Weekdays))
	for _, d := range Weekdays[:5] {
		hours[d] = DayHours{Start: "09:00", End: "17:00", IsOpen: true}
	}
	hours["saturday"] = DayHours{Start: "09:00", End: "15:00", IsOpen: true}
	hours["sunday"] = DayHours{Start: "09:00", End: "15:00", IsOpen: false}

	return Settings{
		WorkingHours: hours,
		NotificationSettings: NotificationSettings{
			EmailNotifications: true,
			SMSNotifications:   false,
			ReminderTime:       60,
		},
		Branding: Branding{
			Logo:           nil,
			PrimaryColor:   "#3B82F6",
			SecondaryColor: "#1E40AF",
		},
	}
}

// SettingsPatch replaces whole sections; nil sections are left untouched.
type SettingsPatch struct {
	WorkingHours         map[string]DayHours
	NotificationSettings *NotificationSettings
	Branding             *Branding
}

func (s Settings) Apply(p SettingsPatch) (Settings, error) {
	next := s.clone()
	if p.WorkingHours != nil {
		for day, h := range p.WorkingHours {
			if !isWeekday(day) {
				return Settings{}, errs.Field("working_hours."+day, ErrUnknownWeekday)
			}
			if !clockRegex.MatchString(h.Start) || !clockRegex.MatchString(h.End) || minutesOf(h.Start) >= minutesOf(h.End) {
				return Settings{}, errs.Field("working_hours."+day, ErrInvalidWorkingHours)
			}
			next.WorkingHours[day] = h
		}
	}
	if p.NotificationSettings != nil {
		if p.NotificationSettings.ReminderTime < 5 || p.NotificationSettings.ReminderTime > 1440 {
			return Settings{}, errs.Field("notification_settings.reminder_time", ErrInvalidReminderTime)
		}
		next.NotificationSettings = *p.NotificationSettings
	}
	if p.Branding != nil {
		if !colorRegex.MatchString(p.Branding.PrimaryColor) {
			return Settings{}, errs.Field("branding.primary_color", ErrInvalidColor)
		}
		if !colorRegex.MatchString(p.Branding.SecondaryColor) {
			return Settings{}, errs.Field("branding.secondary_color", ErrInvalidColor)
		}
		next.Branding = *p.Branding
	}
	return next, nil
}

func (s Settings) clone() Settings {
	out := s
	out.WorkingHours = make(map[string]DayHours, len(s.WorkingHours))
	for k, v := range s.WorkingHours {
		out.WorkingHours[k] = v
	}
	if s.Branding.Logo != nil {
		logo := *s.Branding.Logo
		out.Branding.Logo = &logo
	}
	return out
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func minutesOf(hhmm string) int {
	h, m := 0, 0
	i := 0
	for ; i < len(hhmm) && hhmm[i] != ':'; i++ {
		h = h*10 + int(hhmm[i]-'0')
	}
	for i++; i < len(hhmm); i++ {
		m = m*10 + int(hhmm[i]-'0')
	}
	return h*60 + m
}

package bootstrap

import (
	"time"

	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
	),
)

// NewLocation is the zone booking dates, reminders and analytics are computed in.
func NewLocation(cfg config.Config) (*time.Location, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, errs.Wrapf(err, "invalid BOOKING_TIMEZONE %q", cfg.Booking.TimeZone)
	}
	return loc, nil
}

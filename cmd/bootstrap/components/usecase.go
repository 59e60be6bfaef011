package components

import (
	"time"

	"slotbook/internal/domain/notification"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/password"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"go.uber.org/fx"
)

// claimed jobs stay invisible to other dispatchers for this long
const dispatchLease = 5 * time.Minute

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		password.NewBcryptHasher,
		fx.As(new(password.Hasher)),
	),
	func(cfg config.Config, loc *time.Location) commands.BookingSettings {
		return commands.BookingSettings{
			Location:    loc,
			OwnerAlerts: cfg.Notify.OwnerAlerts,
		}
	},
	func(cfg config.Config, loc *time.Location) commands.NotificationSettings {
		retry := notification.DefaultRetryPolicy()
		retry.MaxAttempts = cfg.Notify.MaxAttempts
		retry.Base = cfg.Notify.BackoffBase
		return commands.NotificationSettings{
			BatchSize:      cfg.Notify.BatchSize,
			Lease:          dispatchLease,
			Retry:          retry,
			Location:       loc,
			ReminderWindow: cfg.Booking.ReminderWindow,
		}
	},
	func(cfg config.Config, loc *time.Location) queries.BookingQuerySettings {
		return queries.BookingQuerySettings{
			Location:       loc,
			ReminderWindow: cfg.Booking.ReminderWindow,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewServiceCommands,
		commands.NewBookingCommands,
		commands.NewUploadCommands,
		commands.NewNotificationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewServiceQueries,
		queries.NewBookingQueries,
		queries.NewDashboardQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

package bootstrap

import (
	"log/slog"

	"slotbook/internal/infra/notify"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		notify.NewRenderer,
		NewTransport,
		fx.Annotate(
			notify.NewSender,
			fx.As(new(commands.NotificationSender)),
		),
	),
)

func NewTransport(cfg config.Config, logger *slog.Logger) notify.Transport {
	if cfg.SMTP.Enabled() {
		logger.Info("email delivery via smtp", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		return notify.NewSMTPTransport(cfg.SMTP)
	}
	logger.Warn("SMTP_HOST not set; emails are logged instead of sent")
	return notify.NewLogTransport(logger)
}

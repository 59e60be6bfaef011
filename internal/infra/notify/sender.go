package notify

import (
	"context"
	"log/slog"

	"slotbook/internal/domain/notification"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

// Transport delivers a rendered message.
type Transport interface {
	Deliver(ctx context.Context, msg *Message) error
}

// Sender renders a job and hands it to a transport.
type Sender struct {
	renderer  *Renderer
	transport Transport
}

func NewSender(renderer *Renderer, transport Transport) *Sender {
	return &Sender{renderer: renderer, transport: transport}
}

func (s *Sender) Send(ctx context.Context, job *notification.Job) error {
	msg, err := s.renderer.Render(job)
	if err != nil {
		return err
	}
	return s.transport.Deliver(ctx, msg)
}

type SMTPTransport struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Deliver opens one SMTP session per message; gomail has no context support, so ctx is only
// checked up front.
func (t *SMTPTransport) Deliver(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := t.dialer.DialAndSend(m); err != nil {
		return errs.Wrap(err, "smtp send")
	}
	return nil
}

// LogTransport is used when SMTP is not configured; messages are logged instead of sent.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Deliver(_ context.Context, msg *Message) error {
	t.logger.Info("email (smtp disabled)", "to", msg.To, "subject", msg.Subject)
	return nil
}

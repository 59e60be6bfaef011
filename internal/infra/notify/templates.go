package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"slotbook/internal/domain/notification"
	"slotbook/internal/pkg/errs"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type topicTemplate struct {
	subject string
	accent  string
	body    string
}

var topics = map[notification.Topic]topicTemplate{
	notification.TopicBookingCreated: {
		subject: "Booking Confirmation - Payment Required",
		accent:  "#3B82F6",
		body: `<p>Dear {{.ClientName}},</p>
<p>Thank you for your booking with {{.BusinessName}}. We have received your appointment request.</p>
{{template "details" .}}
<p><strong>Payment required:</strong> please pay {{money .TotalAmount}} by EFT or bank transfer and upload proof of payment to confirm your appointment.</p>`,
	},
	notification.TopicNewBookingAlert: {
		subject: "New Booking Received",
		accent:  "#3B82F6",
		body: `<p>You have a new booking from {{.ClientName}} ({{.ClientEmail}}{{if .ClientPhone}}, {{.ClientPhone}}{{end}}).</p>
{{template "details" .}}`,
	},
	notification.TopicPaymentVerified: {
		subject: "Payment Confirmed - Your Appointment is Confirmed",
		accent:  "#10B981",
		body: `<p>Dear {{.ClientName}},</p>
<p>Your payment has been received and verified. Your appointment is now confirmed.</p>
{{template "details" .}}
<p>We look forward to seeing you!</p>`,
	},
	notification.TopicAppointmentReminder: {
		subject: "Appointment Reminder",
		accent:  "#F59E0B",
		body: `<p>Dear {{.ClientName}},</p>
<p>This is a friendly reminder about your upcoming appointment. Please arrive 10 minutes early.</p>
{{template "details" .}}
<p>If you need to reschedule or cancel, please contact us as soon as possible.</p>`,
	},
	notification.TopicBookingCancelled: {
		subject: "Appointment Cancelled",
		accent:  "#EF4444",
		body: `<p>Dear {{.ClientName}},</p>
<p>Your appointment has been cancelled.</p>
{{template "details" .}}
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}`,
	},
	notification.TopicBookingRescheduled: {
		subject: "Appointment Rescheduled",
		accent:  "#8B5CF6",
		body: `<p>Dear {{.ClientName}},</p>
<p>Your appointment has been moved{{if .PreviousDate}} from {{longDate .PreviousDate}} at {{clock .PreviousTime}}{{end}}.</p>
{{template "details" .}}`,
	},
}

const layout = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background: {{.Accent}}; color: white; padding: 20px; text-align: center;"><h1>{{.Subject}}</h1></div>
<div style="padding: 20px; background: #f9f9f9;">{{template "body" .Payload}}
<p>Best regards,<br>{{.Payload.BusinessName}}</p></div>
</div></body></html>`

const details = `{{define "details"}}<div style="background: white; padding: 20px; margin: 20px 0;">
<p><strong>Service:</strong> {{.ServiceName}}</p>
<p><strong>Date:</strong> {{longDate .Date}}</p>
<p><strong>Time:</strong> {{clock .Time}}</p>
<p><strong>Duration:</strong> {{.Duration}} minutes</p>
<p><strong>Total Amount:</strong> {{money .TotalAmount}}</p>
</div>{{end}}`

var funcs = template.FuncMap{
	"longDate": func(date string) string {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return date
		}
		return t.Format("Monday, January 02, 2006")
	},
	"clock": func(hhmm string) string {
		t, err := time.Parse("15:04", hhmm)
		if err != nil {
			return hhmm
		}
		return t.Format("3:04 PM")
	},
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
}

// Renderer turns outbox jobs into emails. Templates are parsed once at construction.
type Renderer struct {
	templates map[notification.Topic]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[notification.Topic]*template.Template, len(topics))}
	for topic, tt := range topics {
		t, err := template.New("layout").Funcs(funcs).Parse(layout)
		if err != nil {
			return nil, errs.Wrap(err, "parse layout")
		}
		if _, err = t.Parse(details); err != nil {
			return nil, errs.Wrap(err, "parse details")
		}
		if _, err = t.New("body").Parse(tt.body); err != nil {
			return nil, errs.Wrapf(err, "parse %s", topic)
		}
		r.templates[topic] = t
	}
	return r, nil
}

func (r *Renderer) Render(job *notification.Job) (*Message, error) {
	t, ok := r.templates[job.Topic()]
	if !ok {
		return nil, errs.Newf("no template for topic %q", job.Topic())
	}
	tt := topics[job.Topic()]

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", struct {
		Subject string
		Accent  template.CSS
		Payload notification.Payload
	}{
		Subject: tt.subject,
		Accent:  template.CSS(tt.accent),
		Payload: job.Payload(),
	})
	if err != nil {
		return nil, errs.Wrapf(err, "render %s", job.Topic())
	}
	return &Message{To: job.Recipient(), Subject: tt.subject, HTML: buf.String()}, nil
}

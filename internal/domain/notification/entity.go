package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicBookingCreated      Topic = "booking_created"
	TopicNewBookingAlert     Topic = "new_booking_alert"
	TopicPaymentVerified     Topic = "payment_verified"
	TopicBookingCancelled    Topic = "booking_cancelled"
	TopicBookingRescheduled  Topic = "booking_rescheduled"
	TopicAppointmentReminder Topic = "appointment_reminder"
)

func (t Topic) IsValid() bool {
	switch t {
	case TopicBookingCreated, TopicNewBookingAlert, TopicPaymentVerified,
		TopicBookingCancelled, TopicBookingRescheduled, TopicAppointmentReminder:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

var (
	ErrInvalidTopic     = errors.New("invalid notification topic")
	ErrMissingRecipient = errors.New("notification recipient is required")
)

// Payload carries everything a template needs, so delivery never reads the ledger.
type Payload struct {
	BookingID    uuid.UUID `json:"booking_id"`
	BusinessName string    `json:"business_name"`
	ClientName   string    `json:"client_name"`
	ClientEmail  string    `json:"client_email"`
	ClientPhone  string    `json:"client_phone,omitempty"`
	ServiceName  string    `json:"service_name"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	TotalAmount  float64   `json:"total_amount"`
	Reason       string    `json:"reason,omitempty"`
	PreviousDate string    `json:"previous_date,omitempty"`
	PreviousTime string    `json:"previous_time,omitempty"`
}

// Job is one outbound email sitting in the outbox.
type Job struct {
	id         uuid.UUID
	businessID uuid.UUID
	topic      Topic
	recipient  string
	payload    Payload
	status     Status
	attempts   int
	runAt      time.Time
	lastError  *string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewJob(businessID uuid.UUID, topic Topic, recipient string, payload Payload, runAt time.Time) (*Job, error) {
	if !topic.IsValid() {
		return nil, ErrInvalidTopic
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, ErrMissingRecipient
	}
	return &Job{
		id:         uuid.New(),
		businessID: businessID,
		topic:      topic,
		recipient:  recipient,
		payload:    payload,
		status:     StatusPending,
		runAt:      runAt,
		createdAt:  runAt,
		updatedAt:  runAt,
	}, nil
}

func ReconstructJob(
	id, businessID uuid.UUID,
	topic Topic,
	recipient string,
	payload Payload,
	status Status,
	attempts int,
	runAt time.Time,
	lastError *string,
	createdAt, updatedAt time.Time,
) *Job {
	return &Job{
		id:         id,
		businessID: businessID,
		topic:      topic,
		recipient:  recipient,
		payload:    payload,
		status:     status,
		attempts:   attempts,
		runAt:      runAt,
		lastError:  lastError,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (j *Job) IsDue(now time.Time) bool {
	return j.status == StatusPending && !j.runAt.After(now)
}

// Lease pushes run_at forward so a second dispatcher does not pick the job while it is in flight.
func (j *Job) Lease(until time.Time) {
	j.runAt = until
}

func (j *Job) MarkSent(now time.Time) {
	j.attempts++
	j.status = StatusSent
	j.lastError = nil
	j.updatedAt = now
}

// MarkFailed records a delivery failure and either reschedules or gives up.
func (j *Job) MarkFailed(cause error, now time.Time, policy RetryPolicy) {
	j.attempts++
	msg := cause.Error()
	j.lastError = &msg
	j.updatedAt = now
	if j.attempts >= policy.MaxAttempts {
		j.status = StatusFailed
		return
	}
	j.runAt = now.Add(policy.Backoff(j.attempts))
}

func (j *Job) ID() uuid.UUID         { return j.id }
func (j *Job) BusinessID() uuid.UUID { return j.businessID }
func (j *Job) Topic() Topic          { return j.topic }
func (j *Job) Recipient() string     { return j.recipient }
func (j *Job) Payload() Payload      { return j.payload }
func (j *Job) Status() Status        { return j.status }
func (j *Job) Attempts() int         { return j.attempts }
func (j *Job) RunAt() time.Time      { return j.runAt }
func (j *Job) LastError() *string    { return j.lastError }
func (j *Job) CreatedAt() time.Time  { return j.createdAt }
func (j *Job) UpdatedAt() time.Time  { return j.updatedAt }

//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/testsupport/builder"
	commandsmock "slotbook/internal/testsupport/mock/commands"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationCommandsTestSuite struct {
	suite.Suite
	w             *world
	ctx           context.Context
	ctrl          *gomock.Controller
	sender        *commandsmock.MockNotificationSender
	bookings      commands.BookingCommands
	notifications commands.NotificationCommands

	businessID uuid.UUID
	service    *queries.ServiceView
}

func (s *NotificationCommandsTestSuite) SetupTest() {
	s.w = newWorld()
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.sender = commandsmock.NewMockNotificationSender(s.ctrl)
	s.bookings = s.w.bookings(commandsmock.NewMockFileStore(s.ctrl))
	s.notifications = commands.NewNotificationCommands(s.w.uow, s.sender, s.bookings, s.w.clock, commands.NotificationSettings{
		BatchSize:      10,
		Lease:          time.Minute,
		Retry:          notification.RetryPolicy{MaxAttempts: 3, Base: time.Second, Max: time.Minute},
		Location:       time.UTC,
		ReminderWindow: 24 * time.Hour,
	})

	s.businessID = s.w.register(s.T(), "owner@example.com").Account.ID
	// client mail only, so each booking stages exactly one job
	_, err := s.w.auth.UpdateSettings(s.ctx, s.businessID, user.SettingsPatch{
		NotificationSettings: &user.NotificationSettings{EmailNotifications: false, ReminderTime: 60},
	})
	s.Require().NoError(err)
	s.service = s.w.service(s.T(), s.businessID, nil)
}

func (s *NotificationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *NotificationCommandsTestSuite) book(date, clock string) *queries.BookingView {
	s.T().Helper()
	in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At(date, clock).BuildPublicDTO().ToInput()
	view, err := s.bookings.CreatePublicBooking(s.ctx, in)
	s.Require().NoError(err)
	return view
}

func (s *NotificationCommandsTestSuite) TestDispatchMarksConfirmationSent() {
	b := s.book("2025-06-10", "10:00")

	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *notification.Job) error {
			s.Equal(notification.TopicBookingCreated, job.Topic())
			s.Equal("alex@example.com", job.Recipient())
			s.Equal(b.ID, job.Payload().BookingID)
			s.Equal("Glow Studio", job.Payload().BusinessName)
			return nil
		})

	report, err := s.notifications.DispatchPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(commands.DispatchReport{Claimed: 1, Sent: 1}, *report)

	got, err := s.w.bookingQueries().GetBooking(s.ctx, s.businessID, b.ID)
	s.Require().NoError(err)
	s.True(got.ConfirmationSent)

	jobs := s.w.store.Jobs()
	s.Require().Len(jobs, 1)
	s.Equal(notification.StatusSent, jobs[0].Status())

	s.Run("nothing left to send", func() {
		report, err := s.notifications.DispatchPending(s.ctx)
		s.Require().NoError(err)
		s.Zero(report.Claimed)
	})
}

func (s *NotificationCommandsTestSuite) TestDispatchRetriesThenGivesUp() {
	s.book("2025-06-10", "10:00")
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp: 421")).Times(3)

	report, err := s.notifications.DispatchPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.Retried)

	s.Run("backoff keeps the job off the next pass", func() {
		report, err := s.notifications.DispatchPending(s.ctx)
		s.Require().NoError(err)
		s.Zero(report.Claimed)
	})

	s.w.clock.Add(time.Second)
	report, err = s.notifications.DispatchPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.Retried)

	s.w.clock.Add(2 * time.Second)
	report, err = s.notifications.DispatchPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, report.Failed)

	job := s.w.store.Jobs()[0]
	s.Equal(notification.StatusFailed, job.Status())
	s.Equal(3, job.Attempts())
	s.Require().NotNil(job.LastError())
	s.Equal("smtp: 421", *job.LastError())

	s.w.clock.Add(time.Hour)
	report, err = s.notifications.DispatchPending(s.ctx)
	s.Require().NoError(err)
	s.Zero(report.Claimed)
}

func (s *NotificationCommandsTestSuite) TestEnqueueDueReminders() {
	// now is 2025-06-02 08:00 UTC with a 24h window
	tonight := s.book("2025-06-02", "20:00")
	tomorrow := s.book("2025-06-03", "10:00")
	unconfirmed := s.book("2025-06-02", "12:00")
	for _, id := range []uuid.UUID{tonight.ID, tomorrow.ID} {
		_, err := s.bookings.UpdateStatus(s.ctx, s.businessID, id, "confirmed")
		s.Require().NoError(err)
	}

	var logged bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logged, nil)))
	n, err := s.notifications.EnqueueDueReminders(s.ctx)
	slog.SetDefault(previous)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Empty(logged.String(), "the scheduler reports the count, a clean scan logs nothing")

	got, err := s.w.bookingQueries().GetBooking(s.ctx, s.businessID, tonight.ID)
	s.Require().NoError(err)
	s.True(got.ReminderSent)
	got, err = s.w.bookingQueries().GetBooking(s.ctx, s.businessID, unconfirmed.ID)
	s.Require().NoError(err)
	s.False(got.ReminderSent)

	s.Run("a second scan does not repeat", func() {
		n, err := s.notifications.EnqueueDueReminders(s.ctx)
		s.Require().NoError(err)
		s.Zero(n)
	})

	s.Run("later bookings enter the window", func() {
		s.w.clock.Add(3 * time.Hour)
		n, err := s.notifications.EnqueueDueReminders(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	reminders := 0
	for _, j := range s.w.store.Jobs() {
		if j.Topic() == notification.TopicAppointmentReminder {
			reminders++
		}
	}
	s.Equal(2, reminders)
}

func TestNotificationCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationCommandsTestSuite))
}

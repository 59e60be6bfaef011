//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/notification"
	"slotbook/internal/domain/user"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/testsupport/builder"
	"slotbook/internal/testsupport/testutil"
	commandsmock "slotbook/internal/testsupport/mock/commands"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	w        *world
	ctx      context.Context
	ctrl     *gomock.Controller
	files    *commandsmock.MockFileStore
	bookings commands.BookingCommands

	businessID uuid.UUID
	service    *queries.ServiceView
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.w = newWorld()
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.files = commandsmock.NewMockFileStore(s.ctrl)
	s.bookings = s.w.bookings(s.files)

	s.businessID = s.w.register(s.T(), "owner@example.com").Account.ID
	s.service = s.w.service(s.T(), s.businessID, nil)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BookingCommandsTestSuite) book(date, clock string) *queries.BookingView {
	s.T().Helper()
	in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At(date, clock).BuildPublicDTO().ToInput()
	view, err := s.bookings.CreatePublicBooking(s.ctx, in)
	s.Require().NoError(err)
	return view
}

func (s *BookingCommandsTestSuite) TestCreatePublicBooking() {
	s.Run("copies name, duration and price from the catalog", func() {
		view := s.book("2025-06-10", "10:00")

		s.Equal(s.businessID, view.BusinessID)
		s.Equal("Haircut", view.ServiceName)
		s.Equal(60, view.Duration)
		s.Equal(45.0, view.TotalAmount)
		s.Equal(booking.StatusPendingPayment.String(), view.Status)
		s.ElementsMatch(
			[]notification.Topic{notification.TopicBookingCreated, notification.TopicNewBookingAlert},
			topics(s.w.store.Jobs()),
		)
	})

	s.Run("overlapping slot", func() {
		in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-10", "10:30").BuildPublicDTO().ToInput()
		_, err := s.bookings.CreatePublicBooking(s.ctx, in)
		s.True(errs.Is(err, errs.ErrSlotUnavailable))
	})

	s.Run("back to back is fine", func() {
		s.book("2025-06-10", "11:00")
	})

	s.Run("past date", func() {
		in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-01", "10:00").BuildPublicDTO().ToInput()
		_, err := s.bookings.CreatePublicBooking(s.ctx, in)
		s.True(errs.Is(err, errs.ErrPastDate))
	})

	s.Run("invalid client email", func() {
		in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-10", "14:00").BuildPublicDTO().ToInput()
		in.ClientEmail = "not-an-email"
		_, err := s.bookings.CreatePublicBooking(s.ctx, in)
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("unknown service", func() {
		in := builder.NewBookingBuilder().At("2025-06-10", "15:00").BuildPublicDTO().ToInput()
		_, err := s.bookings.CreatePublicBooking(s.ctx, in)
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("inactive service", func() {
		s.Require().NoError(s.w.services.DeleteService(s.ctx, s.businessID, s.service.ID))
		in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-10", "15:00").BuildPublicDTO().ToInput()
		_, err := s.bookings.CreatePublicBooking(s.ctx, in)
		s.True(errs.Is(err, errs.ErrNotFound))
	})
}

func (s *BookingCommandsTestSuite) TestOwnerAlertFollowsSettings() {
	_, err := s.w.auth.UpdateSettings(s.ctx, s.businessID, user.SettingsPatch{
		NotificationSettings: &user.NotificationSettings{EmailNotifications: false, ReminderTime: 60},
	})
	s.Require().NoError(err)

	s.book("2025-06-10", "10:00")

	s.Equal([]notification.Topic{notification.TopicBookingCreated}, topics(s.w.store.Jobs()))
}

func (s *BookingCommandsTestSuite) TestStatusLifecycle() {
	b := s.book("2025-06-10", "10:00")

	view, err := s.bookings.UpdateStatus(s.ctx, s.businessID, b.ID, "confirmed")
	s.Require().NoError(err)
	s.Equal("confirmed", view.Status)

	_, err = s.bookings.UpdateStatus(s.ctx, s.businessID, b.ID, "pending_payment")
	s.True(errs.Is(err, errs.ErrInvalidTransition))

	_, err = s.bookings.UpdateStatus(s.ctx, s.businessID, b.ID, "no_show")
	s.True(errs.Is(err, errs.ErrInvalidStatus))

	view, err = s.bookings.UpdateStatus(s.ctx, s.businessID, b.ID, "completed")
	s.Require().NoError(err)
	s.Equal("completed", view.Status)

	_, err = s.bookings.CancelBooking(s.ctx, s.businessID, b.ID, "changed my mind")
	s.True(errs.Is(err, errs.ErrAlreadyCompleted))
}

func (s *BookingCommandsTestSuite) TestOtherBusinessCannotTouchBooking() {
	b := s.book("2025-06-10", "10:00")
	other := s.w.register(s.T(), "other@example.com").Account.ID

	_, err := s.bookings.UpdateStatus(s.ctx, other, b.ID, "confirmed")
	s.True(errs.Is(err, errs.ErrNotFound))
	_, err = s.bookings.CancelBooking(s.ctx, other, b.ID, "")
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *BookingCommandsTestSuite) TestPaymentFlow() {
	b := s.book("2025-06-10", "10:00")

	s.files.EXPECT().
		Save(gomock.Any(), "payment-proofs", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, f commands.Upload) (string, error) {
			s.Equal("proof.png", f.Filename)
			return "/uploads/payment-proofs/abc.png", nil
		})

	view, err := s.bookings.UploadPaymentProof(s.ctx, b.ID, commands.Upload{
		Filename: "proof.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte{1, 2, 3}),
	})
	s.Require().NoError(err)
	s.Equal(booking.StatusPendingVerification.String(), view.Status)
	s.Equal(testutil.Ptr("/uploads/payment-proofs/abc.png"), view.PaymentProof)

	view, err = s.bookings.VerifyPayment(s.ctx, s.businessID, b.ID, false)
	s.Require().NoError(err)
	s.Equal(booking.StatusPendingPayment.String(), view.Status)
	s.False(view.PaymentVerified)

	view, err = s.bookings.VerifyPayment(s.ctx, s.businessID, b.ID, true)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed.String(), view.Status)
	s.True(view.PaymentVerified)

	s.Contains(topics(s.w.store.Jobs()), notification.TopicPaymentVerified)
}

func (s *BookingCommandsTestSuite) TestUploadPaymentProof() {
	s.Run("store failure leaves the booking untouched", func() {
		b := s.book("2025-06-10", "10:00")
		s.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))

		_, err := s.bookings.UploadPaymentProof(s.ctx, b.ID, commands.Upload{Filename: "p.pdf"})
		s.Require().Error(err)

		got, err := s.w.bookingQueries().GetBooking(s.ctx, s.businessID, b.ID)
		s.Require().NoError(err)
		s.Nil(got.PaymentProof)
		s.Equal(booking.StatusPendingPayment.String(), got.Status)
	})

	s.Run("cancelled booking", func() {
		b := s.book("2025-06-11", "10:00")
		_, err := s.bookings.CancelBooking(s.ctx, s.businessID, b.ID, "")
		s.Require().NoError(err)

		_, err = s.bookings.UploadPaymentProof(s.ctx, b.ID, commands.Upload{Filename: "p.pdf"})
		s.True(errs.Is(err, errs.ErrInvalidTransition))
	})

	s.Run("unknown booking", func() {
		_, err := s.bookings.UploadPaymentProof(s.ctx, uuid.New(), commands.Upload{Filename: "p.pdf"})
		s.True(errs.Is(err, errs.ErrNotFound))
	})
}

func (s *BookingCommandsTestSuite) TestCancel() {
	b := s.book("2025-06-10", "10:00")

	view, err := s.bookings.CancelBooking(s.ctx, s.businessID, b.ID, "sick")
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled.String(), view.Status)
	s.Equal(testutil.Ptr("sick"), view.CancellationReason)

	view, err = s.bookings.CancelBooking(s.ctx, s.businessID, b.ID, "")
	s.Require().NoError(err)
	s.Equal(testutil.Ptr("sick"), view.CancellationReason, "empty reason keeps the first one")

	cancelled := 0
	for _, j := range s.w.store.Jobs() {
		if j.Topic() == notification.TopicBookingCancelled {
			cancelled++
			s.Equal("sick", j.Payload().Reason)
		}
	}
	s.Equal(1, cancelled, "cancelling twice notifies once")

	s.Run("cancelled slot is free again", func() {
		s.book("2025-06-10", "10:00")
	})
}

func (s *BookingCommandsTestSuite) TestReschedule() {
	first := s.book("2025-06-10", "10:00")
	s.book("2025-06-10", "12:00")

	s.Run("into another booking", func() {
		_, err := s.bookings.RescheduleBooking(s.ctx, s.businessID, first.ID, "2025-06-10", "11:30")
		s.True(errs.Is(err, errs.ErrSlotUnavailable))
	})

	s.Run("overlapping its own old slot", func() {
		view, err := s.bookings.RescheduleBooking(s.ctx, s.businessID, first.ID, "2025-06-10", "10:30")
		s.Require().NoError(err)
		s.Equal("10:30", view.Time)
	})

	s.Run("into the past", func() {
		_, err := s.bookings.RescheduleBooking(s.ctx, s.businessID, first.ID, "2025-06-01", "10:00")
		s.True(errs.Is(err, errs.ErrPastDate))
	})

	s.Run("bad time", func() {
		_, err := s.bookings.RescheduleBooking(s.ctx, s.businessID, first.ID, "2025-06-12", "25:00")
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("notification carries the previous slot", func() {
		var found bool
		for _, j := range s.w.store.Jobs() {
			if j.Topic() == notification.TopicBookingRescheduled {
				found = true
				s.Equal("2025-06-10", j.Payload().PreviousDate)
				s.Equal("10:00", j.Payload().PreviousTime)
				s.Equal("10:30", j.Payload().Time)
			}
		}
		s.True(found)
	})
}

func (s *BookingCommandsTestSuite) TestMarkReminderSent() {
	b := s.book("2025-06-10", "10:00")

	view, err := s.bookings.MarkReminderSent(s.ctx, s.businessID, b.ID)
	s.Require().NoError(err)
	s.True(view.ReminderSent)

	view, err = s.bookings.RescheduleBooking(s.ctx, s.businessID, b.ID, "2025-06-11", "10:00")
	s.Require().NoError(err)
	s.False(view.ReminderSent, "a moved appointment needs a fresh reminder")
}

func (s *BookingCommandsTestSuite) TestConcurrentBookingsOfOneSlot() {
	const attempts = 8
	errCh := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			in := builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-10", "10:00").BuildPublicDTO().ToInput()
			_, err := s.bookings.CreatePublicBooking(s.ctx, in)
			errCh <- err
		}()
	}

	ok := 0
	for i := 0; i < attempts; i++ {
		err := <-errCh
		if err == nil {
			ok++
			continue
		}
		s.True(errs.Is(err, errs.ErrSlotUnavailable), "got %v", err)
	}
	s.Equal(1, ok)
}

func (s *BookingCommandsTestSuite) TestConfirmationFlagWaitsForOwnerWrite() {
	b := s.book("2025-06-10", "10:00")
	marked := make(chan error, 1)

	err := s.w.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		s.Require().NoError(tx.LockBusiness(ctx, s.businessID))
		go func() {
			marked <- s.bookings.MarkConfirmationSent(s.ctx, s.businessID, b.ID)
		}()
		// give the dispatcher time to reach the store while the owner holds the lock
		time.Sleep(50 * time.Millisecond)

		held, err := tx.Bookings().FindByID(ctx, b.ID)
		s.Require().NoError(err)
		s.Require().NoError(held.VerifyPayment(true, s.w.clock.Now()))
		return tx.Bookings().Update(ctx, held)
	})
	s.Require().NoError(err)
	s.Require().NoError(<-marked)

	got, err := s.w.bookingQueries().GetBooking(s.ctx, s.businessID, b.ID)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed.String(), got.Status)
	s.True(got.PaymentVerified)
	s.True(got.ConfirmationSent)

	s.Run("other business", func() {
		err := s.bookings.MarkConfirmationSent(s.ctx, uuid.New(), b.ID)
		s.True(errs.Is(err, errs.ErrNotFound))
	})
}

func (s *BookingCommandsTestSuite) TestServiceWithLongDurationBlocksLaterSlot() {
	long := s.w.service(s.T(), s.businessID, func(b *builder.ServiceBuilder) {
		b.Name = "Colour"
		b.Duration = 120
	})
	in := builder.NewBookingBuilder().WithServiceID(long.ID).At("2025-06-10", "13:00").BuildPublicDTO().ToInput()
	_, err := s.bookings.CreatePublicBooking(s.ctx, in)
	s.Require().NoError(err)

	_, err = s.bookings.CreatePublicBooking(s.ctx,
		builder.NewBookingBuilder().WithServiceID(s.service.ID).At("2025-06-10", "14:30").BuildPublicDTO().ToInput())
	s.True(errs.Is(err, errs.ErrSlotUnavailable))
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

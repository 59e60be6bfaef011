package booking

type Status string

const (
	StatusPendingPayment      Status = "pending_payment"
	StatusPendingVerification Status = "pending_verification"
	StatusConfirmed           Status = "confirmed"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
)

var AllStatuses = []Status{
	StatusPendingPayment,
	StatusPendingVerification,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPendingVerification, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Revenue counts only bookings that are confirmed or already served.
func (s Status) EarnsRevenue() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

var transitions = map[Status][]Status{
	StatusPendingPayment:      {StatusPendingVerification, StatusConfirmed, StatusCancelled},
	StatusPendingVerification: {StatusPendingPayment, StatusConfirmed, StatusCancelled},
	StatusConfirmed:           {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether an owner may move a booking from s to next.
// Staying in the same status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

package errs

import "errors"

// Categories the handler layer maps to HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	// Accounts
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")

	// Catalog
	ErrDuplicateService = errors.New("a service with this name already exists")

	// Bookings
	ErrSlotUnavailable   = errors.New("selected time slot is not available")
	ErrPastDate          = errors.New("cannot book appointments in the past")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyCompleted  = errors.New("cannot cancel a completed booking")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

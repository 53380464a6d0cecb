package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers unknown property, booking, review and user ids.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a caller acts on a resource owned by
	// somebody else.
	ErrForbidden = errors.New("forbidden")

	// ErrDataUnavailable is surfaced when the store cannot be reached.
	// Callers that want fallback content compose it at the boundary.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrDatesUnavailable means an active booking already covers part of
	// the requested date range.
	ErrDatesUnavailable = errors.New("property is not available for the requested dates")

	// ErrDuplicateReview means the (booking, user) pair already has a review.
	ErrDuplicateReview = errors.New("booking has already been reviewed")

	// ErrReviewNotAllowed means the referenced booking is not owned by the
	// caller or is not completed.
	ErrReviewNotAllowed = errors.New("booking cannot be reviewed")

	// ErrNotCancellable means the booking is in a terminal state.
	ErrNotCancellable = errors.New("booking cannot be cancelled in its current state")

	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError marks malformed or missing input. Handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

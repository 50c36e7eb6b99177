package webhook

import "errors"

// ErrValidation wraps every fatal input-contract violation.
var ErrValidation = errors.New("validation error")

var (
	ErrMissingData          = errors.New("payload has no data object")
	ErrUnknownShape         = errors.New("payload has neither event nor appointment")
	ErrMissingBookingID     = errors.New("booking.id is required")
	ErrMissingCustomerEmail = errors.New("customer.email is required")
	ErrBrokenContract       = errors.New("broken output contract")

	ErrDuplicateInFlight = errors.New("booking delivery already in progress")
	ErrRecordNotFound    = errors.New("booking record not found")
)

type validationError struct {
	cause error
}

func (e *validationError) Error() string { return ErrValidation.Error() + ": " + e.cause.Error() }

func (e *validationError) Unwrap() []error { return []error{ErrValidation, e.cause} }

func invalid(cause error) error {
	return &validationError{cause: cause}
}

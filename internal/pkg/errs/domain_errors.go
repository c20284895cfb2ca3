package errs

import "errors"

// Error kinds shared by the usecase and handler layers
var (
	ErrNotFound          = errors.New("not found")
	ErrBookingValidation = errors.New("booking validation error")
	ErrUnsupportedState  = errors.New("unsupported state")
	ErrInvalidInput      = errors.New("invalid input")
)

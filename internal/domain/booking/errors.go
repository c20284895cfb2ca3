package booking

import "shareit/internal/pkg/errs"

var (
	ErrTimestampsRequired = errs.NewKind("start and end must not be empty", errs.ErrInvalidInput, errs.ErrBookingValidation)
	ErrStartEqualsEnd     = errs.NewKind("start and end are equal", errs.ErrBookingValidation)
	ErrEndBeforeStart     = errs.NewKind("end is before start", errs.ErrBookingValidation)
	ErrStartInPast        = errs.NewKind("start must not be in the past", errs.ErrBookingValidation)

	ErrOwnItem         = errs.NewKind("cannot book own item", errs.ErrNotFound)
	ErrItemUnavailable = errs.NewKind("item is not available for booking", errs.ErrBookingValidation)
	ErrAlreadyApproved = errs.NewKind("cannot change the status of an approved booking", errs.ErrBookingValidation)
	ErrInvalidStatus   = errs.NewKind("invalid booking status", errs.ErrInvalidInput)

	ErrUnsupportedState = errs.NewKind("Unknown state: UNSUPPORTED_STATUS", errs.ErrUnsupportedState)
)

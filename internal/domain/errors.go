package domain

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrInvalidPassengerID = errors.New("invalid passenger ID format")

	ErrNotImplemented = errors.New("not implemented")

	ErrInvalidDccResult = errors.New("dcc result must be OPEN, PASSED or FAILED")

	ErrDuplicatePassengerID = errors.New("duplicate passenger ID in booking")
)

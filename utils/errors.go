// utils/errors.go
package utils

import "errors"

// Expected, user-facing failures. Controllers translate these into HTTP
// statuses; anything else is surfaced as a generic 500.
var (
	ErrMissingSelection    = errors.New("at least one room must be selected")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomNumberNotFound  = errors.New("room number not found")
	ErrInvalidSelection    = errors.New("selected room does not belong to this hotel")
	ErrRoomUnavailable     = errors.New("one or more selected rooms are no longer available")
	ErrNoValidDates        = errors.New("no valid dates provided to update availability")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidStatus       = errors.New("invalid booking status transition")
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("you are not authorized to access this resource")
)

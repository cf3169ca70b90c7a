package booking

import (
	"errors"

	"hotelbooking/internal/domain/access"
)

var (
	ErrNotFound                = errors.New("not_found")
	ErrInvalidRange            = errors.New("invalid_range")
	ErrRoomDisabled            = errors.New("room_disabled")
	ErrRoomUnavailableForDates = errors.New("room_unavailable_for_dates")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrForbidden               = access.ErrForbidden
)

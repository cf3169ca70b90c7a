package catalog

import (
	"errors"

	"hotelbooking/internal/domain/access"
)

var (
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNumberTaken = errors.New("room number already exists in this hotel")
	ErrInvalidManager  = errors.New("manager_id must reference an active manager")
	ErrForbidden       = access.ErrForbidden
)

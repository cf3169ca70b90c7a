package domain

import "time"

const (
	RoomSingle = "Single"
	RoomDouble = "Double"
	RoomTwin   = "Twin"
	RoomSuite  = "Suite"
	RoomFamily = "Family"
	RoomDeluxe = "Deluxe"
)

type Room struct {
	ID          int64   `json:"id"`
	HotelID     int64   `json:"hotel_id" gorm:"not null;uniqueIndex:idx_room_hotel_number"`
	RoomNumber  string  `json:"room_number" gorm:"not null;uniqueIndex:idx_room_hotel_number"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null"`
	Capacity    int     `json:"capacity" gorm:"not null"`
	// MaxBookings caps concurrent confirmed reservations; nil means 1.
	MaxBookings *int      `json:"max_bookings"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// BookingLimit is the number of overlapping confirmed bookings the room
// accepts. Zero means the room can never be booked.
func (r *Room) BookingLimit() int {
	if r.MaxBookings == nil {
		return 1
	}
	if *r.MaxBookings < 0 {
		return 0
	}
	return *r.MaxBookings
}

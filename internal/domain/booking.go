package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// RevenueStatuses are the bookings that count as earned money.
func RevenueStatuses() []BookingStatus {
	return []BookingStatus{BookingConfirmed, BookingCompleted}
}

func (s BookingStatus) EarnsRevenue() bool {
	return s == BookingConfirmed || s == BookingCompleted
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

type Booking struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id" gorm:"not null;index"`
	RoomID int64 `json:"room_id" gorm:"not null;index:idx_bookings_room_dates"`
	// CheckOut is exclusive: a stay of [Jan 1, Jan 4) is three nights.
	CheckIn     time.Time     `json:"check_in" gorm:"type:date;not null;index:idx_bookings_room_dates"`
	CheckOut    time.Time     `json:"check_out" gorm:"type:date;not null;index:idx_bookings_room_dates"`
	TotalPrice  float64       `json:"total_price" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

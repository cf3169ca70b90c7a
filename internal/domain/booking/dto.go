package booking

import (
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/validator"
)

type CreateBookingRequest struct {
	RoomID   int64  `json:"room_id" binding:"required,gt=0"`
	CheckIn  string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" binding:"required,datetime=2006-01-02"`
}

type BookingResponse struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	GuestName   string               `json:"guest_name,omitempty"`
	GuestEmail  string               `json:"guest_email,omitempty"`
	RoomID      int64                `json:"room_id"`
	RoomNumber  string               `json:"room_number,omitempty"`
	HotelID     int64                `json:"hotel_id,omitempty"`
	HotelName   string               `json:"hotel_name,omitempty"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	Nights      int                  `json:"nights"`
	TotalPrice  float64              `json:"total_price"`
	Status      domain.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	CancelledAt *time.Time           `json:"cancelled_at,omitempty"`
}

func ToResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		CheckIn:     b.CheckIn.UTC().Format(validator.DateLayout),
		CheckOut:    b.CheckOut.UTC().Format(validator.DateLayout),
		Nights:      nightsBetween(b.CheckIn, b.CheckOut),
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
	if b.User != nil {
		resp.GuestName = b.User.FullName
		resp.GuestEmail = b.User.Email
	}
	if b.Room != nil {
		resp.RoomNumber = b.Room.RoomNumber
		resp.HotelID = b.Room.HotelID
		if b.Room.Hotel != nil {
			resp.HotelName = b.Room.Hotel.Name
		}
	}
	return resp
}

func ToResponses(list []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

type AvailabilityResponse struct {
	RoomID     int64   `json:"room_id"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Available  bool    `json:"available"`
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"total_price"`
}

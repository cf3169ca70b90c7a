package catalog

import (
	"time"

	"hotelbooking/internal/domain"
)

type HotelRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Location    string `json:"location" binding:"required,max=255"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	// ManagerID is honoured for admins only; managers always own what they create.
	ManagerID *int64 `json:"manager_id"`
}

type UpdateHotelRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Location    *string `json:"location" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
	ManagerID   *int64  `json:"manager_id"`
}

type RoomRequest struct {
	RoomNumber  string   `json:"room_number" binding:"required,max=32"`
	Type        string   `json:"type" validate:"room_type"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,min=0"`
	Capacity    int      `json:"capacity" binding:"omitempty,min=1"`
	MaxBookings *int     `json:"max_bookings" binding:"omitempty,min=0"`
	IsAvailable *bool    `json:"is_available"`
}

type UpdateRoomRequest struct {
	RoomNumber  *string  `json:"room_number" binding:"omitempty,min=1,max=32"`
	Type        *string  `json:"type" validate:"omitempty,room_type"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1"`
	MaxBookings *int     `json:"max_bookings" binding:"omitempty,min=0"`
	IsAvailable *bool    `json:"is_available"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type HotelResponse struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Location      string        `json:"location"`
	Description   string        `json:"description,omitempty"`
	ImageURL      string        `json:"image_url,omitempty"`
	ManagerID     *int64        `json:"manager_id,omitempty"`
	PricePerNight float64       `json:"price_per_night"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Rooms         []domain.Room `json:"rooms,omitempty"`
}

func toHotelResponse(h *domain.Hotel, pricePerNight float64) HotelResponse {
	return HotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		Description:   h.Description,
		ImageURL:      h.ImageURL,
		ManagerID:     h.ManagerID,
		PricePerNight: pricePerNight,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
		Rooms:         h.Rooms,
	}
}

// minPrice is the cheapest room of a loaded hotel, 0 without rooms.
func minPrice(rooms []domain.Room) float64 {
	if len(rooms) == 0 {
		return 0
	}
	m := rooms[0].Price
	for _, r := range rooms[1:] {
		if r.Price < m {
			m = r.Price
		}
	}
	return m
}

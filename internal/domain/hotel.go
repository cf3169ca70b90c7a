package domain

import "time"

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" gorm:"not null;index"`
	Location    string    `json:"location" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`
	ManagerID   *int64    `json:"manager_id,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}

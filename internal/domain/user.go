package domain

import (
	"time"

	"hotelbooking/internal/domain/access"
)

type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"not null"`
	FullName     string      `json:"full_name"`
	Role         access.Role `json:"role" gorm:"type:varchar(16);not null;index"`
	IsActive     bool        `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	ResetTokenHash    *string    `json:"-" gorm:"index"`
	ResetTokenExpires *time.Time `json:"-"`
}

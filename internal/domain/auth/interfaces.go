package auth

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
)

// UserRepositoryInterface is what the auth service needs from storage.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*domain.User, error)
	SetResetToken(ctx context.Context, userID int64, hash *string, expires *time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type Mailer interface {
	SendWelcome(ctx context.Context, to, fullName string) error
	SendPasswordReset(ctx context.Context, to, fullName, token string, expiresInMinutes int) error
	ResetLink(token string) string
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	TTL() time.Duration
}

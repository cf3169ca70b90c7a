package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", normalizeEmail(email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	return r.first(ctx, "reset_token_hash = ?", hash)
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, hash *string, expires *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token_hash":    hash,
			"reset_token_expires": expires,
		}).Error
}

// UpdatePassword also clears any outstanding reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash":       passwordHash,
			"reset_token_hash":    nil,
			"reset_token_expires": nil,
		}).Error
}

// Status backs middleware.RequireActive.
func (r *UserRepository) Status(ctx context.Context, userID int64) (string, bool, error) {
	var row struct {
		Role     string
		IsActive bool
	}
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select("role", "is_active").
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, middleware.ErrUserNotFound
		}
		return "", false, err
	}
	return row.Role, row.IsActive, nil
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ClearExpiredResetTokens drops reset tokens that expired before now.
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("reset_token_expires IS NOT NULL AND reset_token_expires < ?", now).
		Updates(map[string]any{
			"reset_token_hash":    nil,
			"reset_token_expires": nil,
		})
	return res.RowsAffected, res.Error
}

package admin

import (
	"context"

	"hotelbooking/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context, f UserFilters) ([]domain.User, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}

package admin

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/domain/auth"
)

type Service struct {
	users  UserRepository
	logger log.Logger
}

func NewService(users UserRepository, logger log.Logger) *Service {
	return &Service{
		users:  users,
		logger: log.With(logger, "component", "admin"),
	}
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, f UserFilters) ([]domain.User, int64, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.users.List(ctx, f)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateUser lets admins create accounts of any role, including staff.
func (s *Service) CreateUser(ctx context.Context, actor access.Actor, req CreateUserRequest) (*domain.User, error) {
	role := access.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	level.Info(s.logger).Log("msg", "user created", "user_id", user.ID, "role", role, "by", actor.UserID)
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, actor access.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := access.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		if id == actor.UserID && role != user.Role {
			return nil, ErrCannotDemoteSelf
		}
		user.Role = role
	}
	if req.IsActive != nil {
		if id == actor.UserID && !*req.IsActive {
			return nil, ErrCannotDemoteSelf
		}
		user.IsActive = *req.IsActive
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	level.Info(s.logger).Log("msg", "user updated", "user_id", id, "by", actor.UserID)
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, actor access.Actor, id int64) error {
	if id == actor.UserID {
		return ErrCannotDeleteSelf
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	level.Info(s.logger).Log("msg", "user deleted", "user_id", id, "by", actor.UserID)
	return nil
}

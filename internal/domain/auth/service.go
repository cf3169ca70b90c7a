package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
	ExpiresIn   time.Duration
}

// Service contains the authentication business logic
type Service struct {
	users    UserRepositoryInterface
	tokens   TokenIssuer
	mailer   Mailer
	resetTTL time.Duration
	logger   log.Logger
	now      func() time.Time
}

func NewService(users UserRepositoryInterface, tokens TokenIssuer, mailer Mailer, resetTTL time.Duration, logger log.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
		logger:   log.With(logger, "component", "auth"),
		now:      time.Now,
	}
}

// Register creates a guest account. Staff accounts are created by admins.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         access.RoleGuest,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendMail("welcome", user.Email, s.mailer.SendWelcome(ctx, user.Email, user.FullName))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: token, ExpiresIn: s.tokens.TTL()}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ForgotPassword issues a reset token for a known email and returns the
// reset link. Unknown emails return an empty link and no error, so the
// response does not reveal which addresses are registered.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	raw, hash, err := generateResetToken()
	if err != nil {
		return "", err
	}
	expires := s.now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, &hash, &expires); err != nil {
		return "", err
	}

	minutes := int(s.resetTTL / time.Minute)
	s.sendMail("password_reset", user.Email, s.mailer.SendPasswordReset(ctx, user.Email, user.FullName, raw, minutes))
	return s.mailer.ResetLink(raw), nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpires != nil && user.ResetTokenExpires.Before(s.now()) {
		return ErrResetTokenExpired
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	level.Info(s.logger).Log("msg", "password reset", "user_id", user.ID)
	return nil
}

func (s *Service) sendMail(kind, to string, err error) {
	if err != nil {
		level.Warn(s.logger).Log("msg", "email not sent", "kind", kind, "to", to, "err", err)
	}
}

package admin

import (
	"errors"

	"hotelbooking/internal/domain/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrCannotDemoteSelf   = errors.New("cannot change your own role or deactivate yourself")
	ErrEmailAlreadyExists = auth.ErrEmailAlreadyExists
)

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores user_id and role on the
// context for downstream handlers.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Could not validate credentials")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

var ErrUserNotFound = errors.New("user not found")

// UserStatusLookup returns the current role and active flag of a user.
type UserStatusLookup interface {
	Status(ctx context.Context, userID int64) (role string, active bool, err error)
}

// RequireActive rejects tokens of deleted or deactivated users and refreshes
// the role from the store, so role changes apply without re-login.
func RequireActive(users UserStatusLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, active, err := users.Status(c.Request.Context(), c.GetInt64(ctxUserID))
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Could not validate credentials")
				return
			}
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if !active {
			response.Abort(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Inactive user")
			return
		}

		c.Set(ctxRole, role)
		c.Next()
	}
}

// Actor builds the access actor from the values JWTAuth stored.
func Actor(c *gin.Context) access.Actor {
	return access.Actor{
		UserID: c.GetInt64(ctxUserID),
		Role:   access.Role(c.GetString(ctxRole)),
	}
}

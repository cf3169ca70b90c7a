package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	// exposeResetLink echoes the reset link in the response outside prod,
	// where email is usually not configured.
	exposeResetLink bool
}

func NewHandler(service *Service, exposeResetLink bool) *Handler {
	return &Handler{service: service, exposeResetLink: exposeResetLink}
}

// Register creates a guest account and sends a welcome email.
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// Login accepts JSON or an OAuth2 password form and returns a bearer token.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse "Access token"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 403 {object} map[string]interface{} "Account disabled"
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Inactive user")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(res.ExpiresIn.Seconds()),
		User:        res.User,
	})
}

// GetMe returns the authenticated user.
// @Summary Current user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Router /api/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ForgotPassword answers 200 whether or not the email is registered.
// @Summary Request password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} map[string]interface{} "Reset requested"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /api/auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	link, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process request")
		return
	}

	data := gin.H{"message": "If the email exists, a password reset link will be sent."}
	if h.exposeResetLink && link != "" {
		data["reset_link"] = link
	}
	response.Success(c, http.StatusOK, data)
}

// ResetPassword consumes a reset token and sets the new password.
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]interface{} "Password changed"
// @Failure 400 {object} map[string]interface{} "Invalid or expired token"
// @Router /api/auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken):
			response.Error(c, http.StatusBadRequest, "INVALID_RESET_TOKEN", "Invalid or expired reset token")
		case errors.Is(err, ErrResetTokenExpired):
			response.Error(c, http.StatusBadRequest, "RESET_TOKEN_EXPIRED", "Reset token has expired")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reset password")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

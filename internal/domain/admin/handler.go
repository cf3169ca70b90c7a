package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain/access"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/paging"
	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetUsers supports ?role=, ?search= and skip/limit paging.
// @Summary List users
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (admin, manager, guest)"
// @Param search query string false "Match email or full name"
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Users and pagination"
// @Failure 400 {object} map[string]interface{} "Unknown role"
// @Failure 403 {object} map[string]interface{} "Admins only"
// @Router /api/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	skip, limit := paging.FromQuery(c)
	users, total, err := h.service.ListUsers(c.Request.Context(), UserFilters{
		Role:   access.Role(c.Query("role")),
		Search: c.Query("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// GetUser returns one user by id.
// @Summary Get user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "User ID" example(1)
// @Success 200 {object} map[string]interface{} "User"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// CreateUser creates an account with any role.
// @Summary Create user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "New user"
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 400 {object} map[string]interface{} "Invalid body or role"
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /api/admin/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// UpdateUser patches role, active flag, profile or password.
// @Summary Update user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "User ID" example(1)
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Updated user"
// @Failure 400 {object} map[string]interface{} "Invalid body or self-modification"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/admin/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user with their bookings. Admins cannot delete themselves.
// @Summary Delete user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "User ID" example(1)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 400 {object} map[string]interface{} "Self-deletion"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be one of admin, manager, guest")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	case errors.Is(err, ErrCannotDeleteSelf), errors.Is(err, ErrCannotDemoteSelf):
		response.Error(c, http.StatusBadRequest, "SELF_MODIFICATION", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

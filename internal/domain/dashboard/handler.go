package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetAdminDashboard returns system-wide totals.
// @Summary Admin dashboard
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminDashboard "Totals"
// @Failure 403 {object} map[string]interface{} "Admins only"
// @Router /api/admin/dashboard [get]
func (h *Handler) GetAdminDashboard(c *gin.Context) {
	d, err := h.service.Admin(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, d)
}

// GetManagerDashboard returns totals over the caller's hotels.
// @Summary Manager dashboard
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ManagerDashboard "Totals"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Router /api/manager/dashboard [get]
func (h *Handler) GetManagerDashboard(c *gin.Context) {
	d, err := h.service.Manager(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, d)
}

package dashboard

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetAdminDashboard)
}

func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	manager.GET("/dashboard", h.GetManagerDashboard)
}

package admin

import "github.com/gin-gonic/gin"

// RegisterRoutes expects a group already restricted to admins.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

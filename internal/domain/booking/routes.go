package booking

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts endpoints that need no token.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/rooms/:id/availability", h.GetAvailability)
}

// RegisterRoutes mounts endpoints for any authenticated user. Scoping to the
// caller happens in the service.
func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/public/bookings", h.Create)
	authed.GET("/public/bookings", h.List)

	bookings := authed.Group("/bookings")
	{
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id/cancel", h.Cancel)
		bookings.PATCH("/:id/complete", h.Complete)
		bookings.PATCH("/:id/confirm", h.Confirm)
	}
}

// RegisterManagerRoutes mounts the staff listing; callers add the role check.
func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	manager.GET("/bookings", h.List)
}

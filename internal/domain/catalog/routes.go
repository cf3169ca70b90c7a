package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	hotels := public.Group("/hotels")
	{
		hotels.GET("", h.GetHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/rooms", h.GetHotelRooms)
	}
}

// RegisterManagerRoutes expects a group already restricted to managers and admins.
func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	h.registerHotelRoutes(manager)

	rooms := manager.Group("/rooms")
	{
		rooms.GET("", h.ListManagedRooms)
		rooms.POST("", h.CreateRoom)
		rooms.GET("/:id", h.GetManagedRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.PATCH("/:id/availability", h.SetRoomAvailability)
		rooms.DELETE("/:id", h.DeleteRoom)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	h.registerHotelRoutes(admin)
}

func (h *Handler) registerHotelRoutes(g *gin.RouterGroup) {
	hotels := g.Group("/hotels")
	{
		hotels.GET("", h.ListManagedHotels)
		hotels.POST("", h.CreateHotel)
		hotels.GET("/:id", h.GetManagedHotel)
		hotels.PUT("/:id", h.UpdateHotel)
		hotels.DELETE("/:id", h.DeleteHotel)
	}
}

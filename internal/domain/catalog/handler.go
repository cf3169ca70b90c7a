package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/paging"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/* ---------- PUBLIC ---------- */

// GetHotels lists hotels with optional location and name filters.
// @Summary List hotels
// @Tags Catalog - Hotels
// @Accept json
// @Produce json
// @Param location query string false "Location substring" example("Almaty")
// @Param search query string false "Name substring"
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Hotels and pagination"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /api/public/hotels [get]
func (h *Handler) GetHotels(c *gin.Context) {
	skip, limit := paging.FromQuery(c)
	f := HotelFilters{
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Skip:     skip,
		Limit:    limit,
	}

	hotels, total, err := h.service.PublicHotels(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotelPage(hotels, total, skip, limit))
}

// GetHotel returns a hotel with its rooms.
// @Summary Get hotel
// @Tags Catalog - Hotels
// @Accept json
// @Produce json
// @Param id path integer true "Hotel ID" example(1)
// @Success 200 {object} map[string]interface{} "Hotel"
// @Failure 404 {object} map[string]interface{} "Hotel not found"
// @Router /api/public/hotels/{id} [get]
func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	hotel, err := h.service.PublicHotel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

// GetHotelRooms lists a hotel's rooms.
// @Summary List hotel rooms
// @Tags Catalog - Hotels
// @Accept json
// @Produce json
// @Param id path integer true "Hotel ID" example(1)
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Rooms"
// @Failure 404 {object} map[string]interface{} "Hotel not found"
// @Router /api/public/hotels/{id}/rooms [get]
func (h *Handler) GetHotelRooms(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	skip, limit := paging.FromQuery(c)

	rooms, err := h.service.PublicHotelRooms(c.Request.Context(), id, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

/* ---------- MANAGED HOTELS ---------- */

// ListManagedHotels lists the hotels the caller manages. Admins see all.
// @Summary List managed hotels
// @Tags Catalog - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Hotels and pagination"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Router /api/manager/hotels [get]
func (h *Handler) ListManagedHotels(c *gin.Context) {
	skip, limit := paging.FromQuery(c)
	f := HotelFilters{Location: c.Query("location"), Search: c.Query("search"), Skip: skip, Limit: limit}

	hotels, total, err := h.service.ManagedHotels(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotelPage(hotels, total, skip, limit))
}

// GetManagedHotel returns a hotel the caller manages.
// @Summary Get managed hotel
// @Tags Catalog - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Hotel ID" example(1)
// @Success 200 {object} map[string]interface{} "Hotel"
// @Failure 403 {object} map[string]interface{} "Not your hotel"
// @Failure 404 {object} map[string]interface{} "Hotel not found"
// @Router /api/manager/hotels/{id} [get]
func (h *Handler) GetManagedHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	hotel, err := h.service.ManagedHotel(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

// CreateHotel creates a hotel owned by the calling manager. Admins may pass manager_id.
// @Summary Create hotel
// @Tags Catalog - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HotelRequest true "Hotel"
// @Success 201 {object} map[string]interface{} "Created hotel"
// @Failure 400 {object} map[string]interface{} "Validation error or invalid manager"
// @Failure 403 {object} map[string]interface{} "Not allowed"
// @Router /api/manager/hotels [post]
func (h *Handler) CreateHotel(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

// UpdateHotel patches a managed hotel. Only admins may reassign it.
// @Summary Update hotel
// @Tags Catalog - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Hotel ID" example(1)
// @Param request body UpdateHotelRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Updated hotel"
// @Failure 403 {object} map[string]interface{} "Not your hotel"
// @Failure 404 {object} map[string]interface{} "Hotel not found"
// @Router /api/manager/hotels/{id} [put]
func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

// DeleteHotel removes a hotel with its rooms and bookings.
// @Summary Delete hotel
// @Tags Catalog - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Hotel ID" example(1)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Not your hotel"
// @Failure 404 {object} map[string]interface{} "Hotel not found"
// @Router /api/manager/hotels/{id} [delete]
func (h *Handler) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Hotel deleted"})
}

/* ---------- MANAGED ROOMS ---------- */

// ListManagedRooms accepts an optional ?hotel_id= filter.
// @Summary List managed rooms
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hotel_id query integer false "Hotel filter"
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Rooms"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Router /api/manager/rooms [get]
func (h *Handler) ListManagedRooms(c *gin.Context) {
	skip, limit := paging.FromQuery(c)
	f := RoomFilters{Skip: skip, Limit: limit}
	if raw := c.Query("hotel_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel_id")
			return
		}
		f.HotelID = id
	}

	rooms, err := h.service.ManagedRooms(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

// GetManagedRoom returns a room in a hotel the caller manages.
// @Summary Get managed room
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Room ID" example(1)
// @Success 200 {object} map[string]interface{} "Room"
// @Failure 403 {object} map[string]interface{} "Not your room"
// @Failure 404 {object} map[string]interface{} "Room not found"
// @Router /api/manager/rooms/{id} [get]
func (h *Handler) GetManagedRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	room, err := h.service.ManagedRoom(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// CreateRoom requires ?hotel_id= naming the hotel the room belongs to.
// @Summary Create room
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hotel_id query integer true "Hotel ID" example(1)
// @Param request body RoomRequest true "Room"
// @Success 201 {object} map[string]interface{} "Created room"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 403 {object} map[string]interface{} "Not your hotel"
// @Failure 409 {object} map[string]interface{} "Room number taken"
// @Router /api/manager/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Query("hotel_id"), 10, 64)
	if err != nil || hotelID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "hotel_id query parameter is required")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room", errs)
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), middleware.Actor(c), hotelID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// UpdateRoom patches a managed room.
// @Summary Update room
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Room ID" example(1)
// @Param request body UpdateRoomRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Updated room"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 403 {object} map[string]interface{} "Not your room"
// @Failure 409 {object} map[string]interface{} "Room number taken"
// @Router /api/manager/rooms/{id} [put]
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room", errs)
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// SetRoomAvailability switches the manual availability flag.
// @Summary Set room availability
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Room ID" example(1)
// @Param request body AvailabilityRequest true "Flag"
// @Success 200 {object} map[string]interface{} "Updated room"
// @Failure 400 {object} map[string]interface{} "Missing is_available"
// @Failure 403 {object} map[string]interface{} "Not your room"
// @Router /api/manager/rooms/{id}/availability [patch]
func (h *Handler) SetRoomAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_available is required")
		return
	}

	room, err := h.service.SetRoomAvailability(c.Request.Context(), middleware.Actor(c), id, *req.IsAvailable)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// DeleteRoom removes a room and its bookings.
// @Summary Delete room
// @Tags Catalog - Rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Room ID" example(1)
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Not your room"
// @Failure 404 {object} map[string]interface{} "Room not found"
// @Router /api/manager/rooms/{id} [delete]
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

/* ---------- HELPERS ---------- */

func hotelPage(hotels []HotelResponse, total int64, skip, limit int) gin.H {
	return gin.H{
		"hotels": hotels,
		"pagination": gin.H{
			"skip":  skip,
			"limit": limit,
			"total": total,
		},
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	case errors.Is(err, ErrRoomNumberTaken):
		response.Error(c, http.StatusConflict, "ROOM_NUMBER_EXISTS", err.Error())
	case errors.Is(err, ErrInvalidManager):
		response.Error(c, http.StatusBadRequest, "INVALID_MANAGER", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/access"
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

// Create books a room for the caller. The booking is confirmed immediately.
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Room and dates"
// @Success 201 {object} map[string]interface{} "Created booking"
// @Failure 400 {object} map[string]interface{} "Invalid dates"
// @Failure 404 {object} map[string]interface{} "Room not found"
// @Failure 409 {object} map[string]interface{} "Room disabled or already booked"
// @Router /api/public/bookings [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	checkIn, err1 := validator.ParseDate(req.CheckIn)
	checkOut, err2 := validator.ParseDate(req.CheckOut)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be formatted as YYYY-MM-DD")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.Actor(c), CreateInput{
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": ToResponse(b)})
}

// GetAvailability reports whether a room is free and what the stay costs.
// @Summary Room availability
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path integer true "Room ID" example(1)
// @Param check_in query string true "YYYY-MM-DD" example("2030-01-10")
// @Param check_out query string true "YYYY-MM-DD, exclusive" example("2030-01-13")
// @Success 200 {object} AvailabilityResponse "Availability"
// @Failure 400 {object} map[string]interface{} "Invalid dates"
// @Failure 404 {object} map[string]interface{} "Room not found"
// @Router /api/public/rooms/{id}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	roomID, ok := parseID(c)
	if !ok {
		return
	}

	checkIn, err1 := validator.ParseDate(c.Query("check_in"))
	checkOut, err2 := validator.ParseDate(c.Query("check_out"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out are required (YYYY-MM-DD)")
		return
	}

	res, err := h.service.Availability(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AvailabilityResponse{
		RoomID:     res.RoomID,
		CheckIn:    res.Range.CheckIn.Format(validator.DateLayout),
		CheckOut:   res.Range.CheckOut.Format(validator.DateLayout),
		Available:  res.Available,
		Nights:     res.Nights,
		TotalPrice: res.TotalPrice,
	})
}

// List returns the bookings the caller may see. Out-of-scope filters yield an empty list.
// @Summary List bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param hotel_id query integer false "Hotel filter"
// @Param room_id query integer false "Room filter"
// @Param skip query integer false "Offset" example(0)
// @Param limit query integer false "Page size" example(20)
// @Success 200 {object} map[string]interface{} "Bookings"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Router /api/public/bookings [get]
func (h *Handler) List(c *gin.Context) {
	skip, limit := paging.FromQuery(c)
	f := ListFilter{
		Status: domain.BookingStatus(c.Query("status")),
		Skip:   skip,
		Limit:  limit,
	}
	if v := c.Query("hotel_id"); v != "" {
		f.HotelID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("room_id"); v != "" {
		f.RoomID, _ = strconv.ParseInt(v, 10, 64)
	}

	list, err := h.service.List(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": ToResponses(list)})
}

// Get returns one booking visible to the caller.
// @Summary Get booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Booking ID" example(1)
// @Success 200 {object} map[string]interface{} "Booking"
// @Failure 403 {object} map[string]interface{} "Not your booking"
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Router /api/bookings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToResponse(b)})
}

// Cancel is open to the guest, the hotel manager and admins.
// @Summary Cancel booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Booking ID" example(1)
// @Success 200 {object} map[string]interface{} "Cancelled booking"
// @Failure 403 {object} map[string]interface{} "Not allowed"
// @Failure 409 {object} map[string]interface{} "Invalid status transition"
// @Router /api/bookings/{id}/cancel [patch]
func (h *Handler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.service.Cancel)
}

// Complete marks a confirmed stay as finished.
// @Summary Complete booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Booking ID" example(1)
// @Success 200 {object} map[string]interface{} "Completed booking"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Failure 409 {object} map[string]interface{} "Invalid status transition"
// @Router /api/bookings/{id}/complete [patch]
func (h *Handler) Complete(c *gin.Context) {
	h.changeStatus(c, h.service.Complete)
}

// Confirm promotes a pending booking if the room still has capacity.
// @Summary Confirm booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path integer true "Booking ID" example(1)
// @Success 200 {object} map[string]interface{} "Confirmed booking"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Failure 409 {object} map[string]interface{} "No capacity or invalid transition"
// @Router /api/bookings/{id}/confirm [patch]
func (h *Handler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.service.Confirm)
}

type statusChange func(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error)

func (h *Handler) changeStatus(c *gin.Context, fn statusChange) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": ToResponse(b)})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room or booking not found")
	case errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_RANGE", "Check-out date must be after check-in date")
	case errors.Is(err, ErrRoomDisabled):
		response.Error(c, http.StatusConflict, "ROOM_DISABLED", "Room is not available for booking")
	case errors.Is(err, ErrRoomUnavailableForDates):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "Room is already booked for the selected dates")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not enough permissions")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Booking cannot change to the requested status")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

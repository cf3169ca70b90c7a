package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/booking"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	exporter *Exporter
	logger   log.Logger
}

func NewHandler(exporter *Exporter, logger log.Logger) *Handler {
	return &Handler{exporter: exporter, logger: log.With(logger, "component", "report")}
}

// ExportBookings streams the bookings of the caller's hotels as an .xlsx attachment.
// Optional filters: ?status= and ?hotel_id=.
// @Summary Export bookings
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param hotel_id query integer false "Hotel filter"
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} map[string]interface{} "Invalid filter"
// @Failure 403 {object} map[string]interface{} "Managers and admins only"
// @Router /api/manager/bookings/export [get]
func (h *Handler) ExportBookings(c *gin.Context) {
	f := booking.ListFilter{Status: domain.BookingStatus(c.Query("status"))}
	if v := c.Query("hotel_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel_id")
			return
		}
		f.HotelID = id
	}

	x, err := h.exporter.BookingsWorkbook(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate Excel file")
		return
	}
	defer x.Close()

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := x.Write(c.Writer); err != nil {
		level.Error(h.logger).Log("msg", "write workbook failed", "err", err)
	}
}

// RegisterManagerRoutes mounts the export under the manager group.
func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	manager.GET("/bookings/export", h.ExportBookings)
}

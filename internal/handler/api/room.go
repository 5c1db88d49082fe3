package api

import (
	"errors"
	"net/http"

	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomQueries queries.RoomQueries
	clock       clock.Clock
}

func NewRoomHandler(roomQueries queries.RoomQueries, clk clock.Clock) *RoomHandler {
	return &RoomHandler{roomQueries: roomQueries, clock: clk}
}

// @Summary List rooms
// @Description List all active rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RoomView
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// @Summary Availability grid
// @Description Room-by-day occupancy over [start_date, end_date)
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param end_date query string false "Range end (YYYY-MM-DD), defaults to start+7"
// @Success 200 {object} queries.AvailabilityGrid
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	start, end, err := query.ParsedDates(clock.Today(h.clock))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	grid, err := h.roomQueries.Availability(c.Request.Context(), start, end)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAvailabilityRangeTooWide):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Date range is too wide",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, grid)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// AvailabilityHandler answers room occupancy questions
type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// Grid returns the room by night occupancy grid for [from, to)
func (h *AvailabilityHandler) Grid(c *gin.Context) {
	var query request.DateRangeQuery
	if !bindQuery(c, &query) {
		return
	}

	rows, err := h.availabilityService.Grid(c.Request.Context(), parseDate(query.From), parseDate(query.To))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Availability retrieved successfully", rows)
}

// FreeRooms lists the rooms free for a whole stay
func (h *AvailabilityHandler) FreeRooms(c *gin.Context) {
	var query request.DateRangeQuery
	if !bindQuery(c, &query) {
		return
	}

	rooms, err := h.availabilityService.FreeRooms(c.Request.Context(), parseDate(query.From), parseDate(query.To))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Free rooms retrieved successfully", rooms)
}

// Occupied reports whether a room is taken on a night
func (h *AvailabilityHandler) Occupied(c *gin.Context) {
	var query request.OccupiedQuery
	if !bindQuery(c, &query) {
		return
	}

	occupied, err := h.availabilityService.IsOccupied(c.Request.Context(), query.RoomNo, parseDate(query.Date))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Occupancy retrieved successfully", gin.H{
		"room_no":  query.RoomNo,
		"date":     query.Date,
		"occupied": occupied,
	})
}

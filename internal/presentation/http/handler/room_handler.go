package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// RoomHandler handles room and room category HTTP requests
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func categoryInput(req *request.CategoryRequest) *service.CategoryInput {
	return &service.CategoryInput{
		Name:         req.Name,
		Rate:         req.Rate.Float(),
		GST:          req.GST.Float(),
		HSN:          req.HSN,
		MaxOccupancy: req.MaxOccupancy,
		Description:  req.Description,
	}
}

func roomInput(req *request.RoomRequest) *service.RoomInput {
	return &service.RoomInput{
		RoomNo:     req.RoomNo,
		CategoryID: uuid.MustParse(req.CategoryID),
		Floor:      req.Floor,
		Active:     req.Active,
	}
}

// CreateCategory handles creating a room category
func (h *RoomHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.roomService.CreateCategory(c.Request.Context(), categoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Room category created successfully", category)
}

// ListCategories handles listing room categories
func (h *RoomHandler) ListCategories(c *gin.Context) {
	categories, err := h.roomService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room categories retrieved successfully", categories)
}

// GetCategory handles getting a room category
func (h *RoomHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.roomService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room category retrieved successfully", category)
}

// UpdateCategory handles updating a room category. Existing room charges
// keep the tariff they were priced at.
func (h *RoomHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.roomService.UpdateCategory(c.Request.Context(), id, categoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room category updated successfully", category)
}

// DeleteCategory handles deleting a room category
func (h *RoomHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room category deleted successfully", nil)
}

// CreateRoom handles creating a room
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req request.RoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), roomInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Room created successfully", room)
}

// ListRooms handles listing rooms. ?active=true hides rooms out of service.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rooms retrieved successfully", rooms)
}

// GetRoom handles getting a room
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room retrieved successfully", room)
}

// UpdateRoom handles updating a room
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.RoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, roomInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room updated successfully", room)
}

// DeleteRoom handles deleting a room
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room deleted successfully", nil)
}

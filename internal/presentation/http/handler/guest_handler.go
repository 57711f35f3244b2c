package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// GuestHandler handles guest HTTP requests
type GuestHandler struct {
	guestService *service.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

func guestInput(req *request.GuestRequest) *service.GuestInput {
	return &service.GuestInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Nationality: req.Nationality,
		IDProofType: req.IDProofType,
		IDProofNo:   req.IDProofNo,
		GSTIN:       req.GSTIN,
	}
}

// Create handles creating a guest
func (h *GuestHandler) Create(c *gin.Context) {
	var req request.GuestRequest
	if !bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), guestInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Guest created successfully", guest)
}

// List handles listing guests, optionally searching name and phone
func (h *GuestHandler) List(c *gin.Context) {
	var query request.GuestListQuery
	if !bindQuery(c, &query) {
		return
	}
	params := pageParams(c)

	guests, total, err := h.guestService.ListGuests(c.Request.Context(), params, query.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Guests retrieved successfully", guests, params, total)
}

// Get handles getting a guest
func (h *GuestHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest retrieved successfully", guest)
}

// Update handles updating a guest
func (h *GuestHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.GuestRequest
	if !bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), id, guestInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest updated successfully", guest)
}

// Delete handles deleting a guest
func (h *GuestHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.guestService.DeleteGuest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest deleted successfully", nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// HotelHandler handles hotel HTTP requests
type HotelHandler struct {
	hotelService *service.HotelService
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(hotelService *service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func settingsFromRequest(req *request.HotelSettingsRequest) *entity.HotelSettings {
	if req == nil {
		return nil
	}
	s := &entity.HotelSettings{
		InvoicePrefix:           req.InvoicePrefix,
		BookingPrefix:           req.BookingPrefix,
		RestaurantInvoicePrefix: req.RestaurantInvoicePrefix,
		KOTPrefix:               req.KOTPrefix,
		OrderPrefix:             req.OrderPrefix,
		Currency:                req.Currency,
		Timezone:                req.Timezone,
		CheckInTime:             req.CheckInTime,
		CheckOutTime:            req.CheckOutTime,
	}
	if req.DefaultGST != nil {
		s.DefaultGST = req.DefaultGST.Float()
	}
	return s
}

// Create handles creating a hotel
func (h *HotelHandler) Create(c *gin.Context) {
	var req request.CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), &service.CreateHotelInput{
		Name:     req.Name,
		Slug:     req.Slug,
		GSTIN:    req.GSTIN,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Settings: settingsFromRequest(req.Settings),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Hotel created successfully", hotel)
}

// List handles listing hotels
func (h *HotelHandler) List(c *gin.Context) {
	params := pageParams(c)
	hotels, total, err := h.hotelService.ListHotels(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Hotels retrieved successfully", hotels, params, total)
}

// Get returns the hotel resolved from the path
func (h *HotelHandler) Get(c *gin.Context) {
	hotel, err := h.hotelService.GetHotel(c.Request.Context(), hotelID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hotel retrieved successfully", hotel)
}

// Update handles updating the hotel and its billing settings
func (h *HotelHandler) Update(c *gin.Context) {
	var req request.UpdateHotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), hotelID(c), &service.UpdateHotelInput{
		Name:     req.Name,
		GSTIN:    req.GSTIN,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Settings: settingsFromRequest(req.Settings),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Hotel updated successfully", hotel)
}

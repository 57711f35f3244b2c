package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// RestaurantHandler handles the menu, tables, orders and kitchen tickets
type RestaurantHandler struct {
	restaurantService *service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantService *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func menuItemInput(req *request.MenuItemRequest) *service.MenuItemInput {
	return &service.MenuItemInput{
		Name:      req.Name,
		Category:  req.Category,
		HSN:       req.HSN,
		Rate:      req.Rate.Float(),
		GST:       req.GST.Float(),
		Veg:       req.Veg,
		Available: req.Available,
	}
}

// CreateMenuItem handles adding a dish
func (h *RestaurantHandler) CreateMenuItem(c *gin.Context) {
	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.restaurantService.CreateMenuItem(c.Request.Context(), menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// ListMenu handles listing the menu
func (h *RestaurantHandler) ListMenu(c *gin.Context) {
	var query request.MenuListQuery
	if !bindQuery(c, &query) {
		return
	}
	params := pageParams(c)

	items, total, err := h.restaurantService.ListMenu(c.Request.Context(), repository.MenuFilter{
		Search:        query.Search,
		Category:      query.Category,
		AvailableOnly: query.AvailableOnly,
	}, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Menu retrieved successfully", items, params, total)
}

// GetMenuItem handles getting a dish
func (h *RestaurantHandler) GetMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.restaurantService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// UpdateMenuItem handles updating a dish
func (h *RestaurantHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.restaurantService.UpdateMenuItem(c.Request.Context(), id, menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// DeleteMenuItem handles removing a dish
func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.restaurantService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}

// CreateTable handles adding a dining table
func (h *RestaurantHandler) CreateTable(c *gin.Context) {
	var req request.TableRequest
	if !bindJSON(c, &req) {
		return
	}

	table, err := h.restaurantService.CreateTable(c.Request.Context(), &service.TableInput{
		TableNo: req.TableNo,
		Seats:   req.Seats,
		Section: req.Section,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created successfully", table)
}

// ListTables handles listing dining tables
func (h *RestaurantHandler) ListTables(c *gin.Context) {
	tables, err := h.restaurantService.ListTables(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved successfully", tables)
}

// GetTable handles getting a dining table
func (h *RestaurantHandler) GetTable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	table, err := h.restaurantService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved successfully", table)
}

// UpdateTable handles updating a dining table
func (h *RestaurantHandler) UpdateTable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.TableRequest
	if !bindJSON(c, &req) {
		return
	}

	table, err := h.restaurantService.UpdateTable(c.Request.Context(), id, &service.TableInput{
		TableNo: req.TableNo,
		Seats:   req.Seats,
		Section: req.Section,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}

// DeleteTable handles removing a dining table
func (h *RestaurantHandler) DeleteTable(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.restaurantService.DeleteTable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table deleted successfully", nil)
}

// OpenOrder handles seating a party at a table
func (h *RestaurantHandler) OpenOrder(c *gin.Context) {
	var req request.OpenOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.restaurantService.OpenOrder(c.Request.Context(), &service.OpenOrderInput{
		TableID:    uuid.MustParse(req.TableID),
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Covers:     req.Covers,
		BookingID:  optionalUUID(req.BookingID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order opened successfully", order)
}

// ListOrders handles listing orders
func (h *RestaurantHandler) ListOrders(c *gin.Context) {
	var query request.OrderListQuery
	if !bindQuery(c, &query) {
		return
	}
	params := pageParams(c)

	var filter repository.TableOrderFilter
	if status, ok := enum.ParseTableOrderStatus(query.Status); ok {
		filter.Status = &status
	}
	filter.TableID = optionalUUID(&query.TableID)

	orders, total, err := h.restaurantService.ListOrders(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Orders retrieved successfully", orders, params, total)
}

// GetOrder handles getting an order with its lines
func (h *RestaurantHandler) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.restaurantService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// AddItems handles sending a round of dishes to the kitchen
func (h *RestaurantHandler) AddItems(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.AddItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{
			MenuItemID: optionalUUID(it.MenuItemID),
			Item:       it.Item,
			HSN:        it.HSN,
			Rate:       it.Rate.Ptr(),
			Qty:        it.Qty.Ptr(),
			GST:        it.GST.Ptr(),
			Note:       it.Note,
		})
	}

	kot, err := h.restaurantService.AddItems(c.Request.Context(), id, items)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Kitchen order ticket created successfully", kot)
}

// UpdateLine handles editing a line on an open order
func (h *RestaurantHandler) UpdateLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	var req request.UpdateLineRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := h.restaurantService.UpdateLine(c.Request.Context(), id, lineID, &service.UpdateLineInput{
		Rate:   req.Rate.Ptr(),
		Qty:    req.Qty.Ptr(),
		GST:    req.GST.Ptr(),
		Amount: req.Amount.Ptr(),
		Note:   req.Note,
		Edited: req.Edited,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line updated successfully", line)
}

// RemoveLine handles removing a line from an open order
func (h *RestaurantHandler) RemoveLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}

	if err := h.restaurantService.RemoveLine(c.Request.Context(), id, lineID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order line removed successfully", nil)
}

// CancelOrder handles voiding an open order
func (h *RestaurantHandler) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.restaurantService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}

// Bill handles closing an order
func (h *RestaurantHandler) Bill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.BillOrderRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.restaurantService.Bill(c.Request.Context(), id, &service.BillInput{
		Payments:        paymentInputs(req.Payments),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerGSTIN:   req.CustomerGSTIN,
		ChargeToBooking: req.ChargeToBooking,
		BookingID:       optionalUUID(req.BookingID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order billed successfully", result)
}

// ListKOTs handles the kitchen display listing
func (h *RestaurantHandler) ListKOTs(c *gin.Context) {
	var query request.KOTListQuery
	if !bindQuery(c, &query) {
		return
	}

	var status *enum.KOTStatus
	if s, ok := enum.ParseKOTStatus(query.Status); ok {
		status = &s
	}

	kots, err := h.restaurantService.ListKOTs(c.Request.Context(), status, optionalUUID(&query.OrderID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen order tickets retrieved successfully", kots)
}

// UpdateKOTStatus handles moving a kitchen ticket forward
func (h *RestaurantHandler) UpdateKOTStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.KOTStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, _ := enum.ParseKOTStatus(req.Status)

	kot, err := h.restaurantService.UpdateKOTStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen order ticket updated successfully", kot)
}

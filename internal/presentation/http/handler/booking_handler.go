package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/application/service"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// BookingHandler handles bookings, their charges and their payments
type BookingHandler struct {
	bookingService *service.BookingService
	invoiceService *service.InvoiceService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService, invoiceService *service.InvoiceService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, invoiceService: invoiceService}
}

func advanceFromRequest(req *request.AdvancePaymentRequest) *entity.AdvancePayment {
	if req == nil {
		return nil
	}
	return &entity.AdvancePayment{
		Mode:   req.Mode,
		Amount: req.Amount.Float(),
		Date:   datePtr(req.Date),
		Remark: req.Remark,
	}
}

func paymentInput(req *request.PaymentRequest) service.PaymentInput {
	return service.PaymentInput{
		Mode:   req.Mode,
		Amount: req.Amount.Float(),
		Date:   datePtr(req.Date),
		Remark: req.Remark,
	}
}

func paymentInputs(reqs []request.PaymentRequest) []service.PaymentInput {
	out := make([]service.PaymentInput, 0, len(reqs))
	for i := range reqs {
		out = append(out, paymentInput(&reqs[i]))
	}
	return out
}

// Create handles creating a booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req request.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	rooms := make([]service.BookingRoomInput, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms = append(rooms, service.BookingRoomInput{
			RoomID: uuid.MustParse(r.RoomID),
			Rate:   r.Rate.Ptr(),
			GST:    r.GST.Ptr(),
		})
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &service.CreateBookingInput{
		GuestID: optionalUUID(req.GuestID),
		Guest: service.GuestInput{
			Name:    req.Guest.Name,
			Phone:   req.Guest.Phone,
			Email:   req.Guest.Email,
			Address: req.Guest.Address,
			GSTIN:   req.Guest.GSTIN,
		},
		CheckIn:     parseDate(req.CheckInDate),
		CheckOut:    parseDate(req.CheckOutDate),
		Adults:      req.Adults,
		Children:    req.Children,
		ExtraGuests: req.ExtraGuests,
		Status:      enum.BookingStatus(req.BookingStatus),
		Rooms:       rooms,
		Advance:     advanceFromRequest(req.AdvancePayment),
		Source:      req.Source,
		Remarks:     req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// List handles listing bookings
func (h *BookingHandler) List(c *gin.Context) {
	var query request.BookingListQuery
	if !bindQuery(c, &query) {
		return
	}
	params := pageParams(c)

	filter := repository.BookingFilter{
		From:      datePtr(query.From),
		To:        datePtr(query.To),
		CheckedIn: query.CheckedIn,
		Search:    query.Search,
	}
	if query.Status != "" {
		status := enum.BookingStatus(query.Status)
		filter.Status = &status
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Bookings retrieved successfully", bookings, params, total)
}

// Get handles getting a booking with its charges, payments and summary
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// Update handles editing the booking header
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	version, ok := expectedVersion(c, req.Version)
	if !ok {
		return
	}

	input := &service.UpdateBookingInput{
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		GuestEmail:  req.GuestEmail,
		GuestGSTIN:  req.GuestGSTIN,
		CheckIn:     optionalDate(req.CheckInDate),
		CheckOut:    optionalDate(req.CheckOutDate),
		Adults:      req.Adults,
		Children:    req.Children,
		ExtraGuests: req.ExtraGuests,
		Advance:     advanceFromRequest(req.AdvancePayment),
		Source:      req.Source,
		Remarks:     req.Remarks,
	}
	if req.BookingStatus != nil {
		status := enum.BookingStatus(*req.BookingStatus)
		input.Status = &status
	}

	booking, err := h.bookingService.UpdateDetails(c.Request.Context(), id, version, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking updated successfully", booking)
}

type transition func(ctx context.Context, id uuid.UUID, expectedVersion int) (*service.BookingDetail, error)

// statusChange runs a check-in, check-out or cancel. The body is optional.
func (h *BookingHandler) statusChange(c *gin.Context, fn transition, message string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.VersionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	version, ok := expectedVersion(c, req.Version)
	if !ok {
		return
	}

	booking, err := fn(c.Request.Context(), id, version)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, booking)
}

// CheckIn handles checking a booking in
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.statusChange(c, h.bookingService.CheckIn, "Guest checked in successfully")
}

// CheckOut handles checking a booking out
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.statusChange(c, h.bookingService.CheckOut, "Guest checked out successfully")
}

// Cancel handles cancelling a booking
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.statusChange(c, h.bookingService.Cancel, "Booking cancelled successfully")
}

// AddToken handles adding a service or food charge
func (h *BookingHandler) AddToken(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.bookingService.AddToken(c.Request.Context(), id, &service.TokenInput{
		Kind:   enum.TokenKind(req.Kind),
		Item:   req.Item,
		HSN:    req.HSN,
		Rate:   req.Rate.Float(),
		Qty:    req.Qty.Ptr(),
		GST:    req.GST.Float(),
		Amount: req.Amount.Float(),
		Edited: req.Edited,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Charge added successfully", token)
}

// UpdateToken handles editing an unbilled charge
func (h *BookingHandler) UpdateToken(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tokenID, ok := paramID(c, "token_id")
	if !ok {
		return
	}
	var req request.UpdateTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.bookingService.UpdateToken(c.Request.Context(), id, tokenID, &service.UpdateTokenInput{
		Item:   req.Item,
		HSN:    req.HSN,
		Rate:   req.Rate.Ptr(),
		Qty:    req.Qty.Ptr(),
		GST:    req.GST.Ptr(),
		Amount: req.Amount.Ptr(),
		Days:   req.Days,
		Edited: req.Edited,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Charge updated successfully", token)
}

// RemoveToken handles removing an unbilled charge
func (h *BookingHandler) RemoveToken(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tokenID, ok := paramID(c, "token_id")
	if !ok {
		return
	}

	if err := h.bookingService.RemoveToken(c.Request.Context(), id, tokenID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Charge removed successfully", nil)
}

// Unbilled lists the charges the next invoice would pick up
func (h *BookingHandler) Unbilled(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	charges, err := h.bookingService.ListUnbilled(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unbilled charges retrieved successfully", charges)
}

// AddPayment handles recording a payment against a booking
func (h *BookingHandler) AddPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment := paymentInput(&req)
	booking, err := h.bookingService.AddPayment(c.Request.Context(), id, &payment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", booking)
}

// GenerateInvoice handles billing a booking's unbilled charges
func (h *BookingHandler) GenerateInvoice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req request.GenerateInvoiceRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	tokenIDs := make([]uuid.UUID, 0, len(req.TokenIDs))
	for _, s := range req.TokenIDs {
		tokenIDs = append(tokenIDs, uuid.MustParse(s))
	}

	invoice, err := h.invoiceService.GenerateForBooking(c.Request.Context(), id, &service.GenerateInvoiceInput{
		TokenIDs:      tokenIDs,
		ApplyAdvance:  req.ApplyAdvance,
		Payments:      paymentInputs(req.Payments),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerGSTIN: req.CustomerGSTIN,
		Remarks:       req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice generated successfully", invoice)
}

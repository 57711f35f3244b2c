package request

import "github.com/sangkips/hotelpos-api/pkg/billing"

// MenuItemRequest represents a dish on the menu
type MenuItemRequest struct {
	Name      string         `json:"name" binding:"required,max=255"`
	Category  *string        `json:"category" binding:"omitempty,max=100"`
	HSN       string         `json:"hsn" binding:"hsn"`
	Rate      billing.Number `json:"rate" binding:"min=0"`
	GST       billing.Number `json:"gst" binding:"min=0,max=100"`
	Veg       bool           `json:"veg"`
	Available *bool          `json:"available"`
}

// MenuListQuery represents menu listing filters
type MenuListQuery struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
}

// TableRequest represents a dining table
type TableRequest struct {
	TableNo string  `json:"table_no" binding:"required,max=20"`
	Seats   int     `json:"seats" binding:"min=0,max=50"`
	Section *string `json:"section" binding:"omitempty,max=50"`
}

// OpenOrderRequest seats a party at a table
type OpenOrderRequest struct {
	TableID    string  `json:"table_id" binding:"required,uuid"`
	GuestName  string  `json:"guest_name" binding:"omitempty,max=255"`
	GuestPhone string  `json:"guest_phone" binding:"omitempty,max=50"`
	Covers     int     `json:"covers" binding:"min=0,max=100"`
	BookingID  *string `json:"booking_id" binding:"omitempty,uuid"`
}

// OrderItemRequest is one dish sent to the kitchen. Either menu_item_id or
// item must be set.
type OrderItemRequest struct {
	MenuItemID *string         `json:"menu_item_id" binding:"omitempty,uuid"`
	Item       string          `json:"item" binding:"omitempty,max=255"`
	HSN        string          `json:"hsn" binding:"hsn"`
	Rate       *billing.Number `json:"rate" binding:"omitempty,min=0"`
	Qty        *billing.Number `json:"qty" binding:"omitempty,gt=0"`
	GST        *billing.Number `json:"gst" binding:"omitempty,min=0,max=100"`
	Note       *string         `json:"note" binding:"omitempty,max=255"`
}

// AddItemsRequest sends a round of dishes to the kitchen
type AddItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateLineRequest edits a line on an open order
type UpdateLineRequest struct {
	Rate   *billing.Number `json:"rate" binding:"omitempty,min=0"`
	Qty    *billing.Number `json:"qty" binding:"omitempty,min=0"`
	GST    *billing.Number `json:"gst" binding:"omitempty,min=0,max=100"`
	Amount *billing.Number `json:"amount" binding:"omitempty,min=0"`
	Note   *string         `json:"note" binding:"omitempty,max=255"`
	Edited string          `json:"edited" binding:"omitempty,max=20"`
}

// BillOrderRequest closes an order, either as a restaurant invoice or as
// food charges on a booking
type BillOrderRequest struct {
	Payments        []PaymentRequest `json:"payments" binding:"omitempty,dive"`
	CustomerName    *string          `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone   *string          `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerGSTIN   *string          `json:"customer_gstin" binding:"omitempty,gstin"`
	ChargeToBooking bool             `json:"charge_to_booking"`
	BookingID       *string          `json:"booking_id" binding:"omitempty,uuid"`
}

// OrderListQuery represents order listing filters
type OrderListQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=Open Billed Cancelled"`
	TableID string `form:"table_id" binding:"omitempty,uuid"`
}

// KOTListQuery represents kitchen ticket filters
type KOTListQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=Pending Preparing Served"`
	OrderID string `form:"order_id" binding:"omitempty,uuid"`
}

// KOTStatusRequest moves a kitchen ticket forward
type KOTStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Preparing Served"`
}

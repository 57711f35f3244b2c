package request

import "github.com/sangkips/hotelpos-api/pkg/billing"

// HotelSettingsRequest represents per-hotel billing settings. Empty fields
// keep their current or default value.
type HotelSettingsRequest struct {
	InvoicePrefix           string          `json:"invoice_prefix" binding:"omitempty,max=20"`
	BookingPrefix           string          `json:"booking_prefix" binding:"omitempty,max=20"`
	RestaurantInvoicePrefix string          `json:"restaurant_invoice_prefix" binding:"omitempty,max=20"`
	KOTPrefix               string          `json:"kot_prefix" binding:"omitempty,max=20"`
	OrderPrefix             string          `json:"order_prefix" binding:"omitempty,max=20"`
	DefaultGST              *billing.Number `json:"default_gst" binding:"omitempty,min=0,max=100"`
	Currency                string          `json:"currency" binding:"omitempty,len=3"`
	Timezone                string          `json:"timezone" binding:"omitempty,timezone"`
	CheckInTime             string          `json:"check_in_time" binding:"omitempty,datetime=15:04"`
	CheckOutTime            string          `json:"check_out_time" binding:"omitempty,datetime=15:04"`
}

// CreateHotelRequest represents a create hotel request
type CreateHotelRequest struct {
	Name     string                `json:"name" binding:"required,min=2,max=255"`
	Slug     string                `json:"slug" binding:"omitempty,min=2,max=100,slug"`
	GSTIN    *string               `json:"gstin" binding:"omitempty,gstin"`
	Address  *string               `json:"address"`
	Phone    *string               `json:"phone" binding:"omitempty,max=50"`
	Email    *string               `json:"email" binding:"omitempty,email"`
	Settings *HotelSettingsRequest `json:"settings"`
}

// UpdateHotelRequest represents an update hotel request
type UpdateHotelRequest struct {
	Name     *string               `json:"name" binding:"omitempty,min=2,max=255"`
	GSTIN    *string               `json:"gstin" binding:"omitempty,gstin"`
	Address  *string               `json:"address"`
	Phone    *string               `json:"phone" binding:"omitempty,max=50"`
	Email    *string               `json:"email" binding:"omitempty,email"`
	Settings *HotelSettingsRequest `json:"settings"`
}

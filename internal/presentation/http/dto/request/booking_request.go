package request

import (
	"encoding/json"

	"github.com/sangkips/hotelpos-api/pkg/billing"
)

// PaymentRequest represents a payment received
type PaymentRequest struct {
	Mode   string         `json:"mode" binding:"required,max=50"`
	Amount billing.Number `json:"amount" binding:"min=0"`
	Date   string         `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Remark *string        `json:"remark" binding:"omitempty,max=255"`
}

// AdvancePaymentRequest represents the advance taken with a booking
type AdvancePaymentRequest struct {
	Mode   string         `json:"mode" binding:"omitempty,max=50"`
	Amount billing.Number `json:"amount" binding:"min=0"`
	Date   string         `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Remark string         `json:"remark" binding:"omitempty,max=255"`
}

// BookingGuestRequest is the guest on a booking. Blocked bookings may
// leave it empty.
type BookingGuestRequest struct {
	Name    string  `json:"name" binding:"omitempty,max=255"`
	Phone   string  `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin" binding:"omitempty,gstin"`
}

// BookingRoomRequest selects a room for a booking
type BookingRoomRequest struct {
	RoomID string          `json:"room_id" binding:"required,uuid"`
	Rate   *billing.Number `json:"rate" binding:"omitempty,min=0"`
	GST    *billing.Number `json:"gst" binding:"omitempty,min=0,max=100"`
}

// CreateBookingRequest represents a create booking request
type CreateBookingRequest struct {
	GuestID        *string                `json:"guest_id" binding:"omitempty,uuid"`
	Guest          BookingGuestRequest    `json:"guest"`
	CheckInDate    string                 `json:"checkin_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate   string                 `json:"checkout_date" binding:"required,datetime=2006-01-02"`
	Adults         int                    `json:"adults" binding:"min=0,max=50"`
	Children       int                    `json:"children" binding:"min=0,max=50"`
	ExtraGuests    json.RawMessage        `json:"extra_guests"`
	BookingStatus  string                 `json:"booking_status" binding:"omitempty,oneof=Confirmed Blocked"`
	Rooms          []BookingRoomRequest   `json:"rooms" binding:"required,min=1,dive"`
	AdvancePayment *AdvancePaymentRequest `json:"advance_payment"`
	Source         *string                `json:"source" binding:"omitempty,max=100"`
	Remarks        *string                `json:"remarks"`
}

// UpdateBookingRequest represents a booking header edit. Version is the
// booking version the client last read; the X-Booking-Version header
// takes precedence.
type UpdateBookingRequest struct {
	Version        int                    `json:"version" binding:"min=0"`
	GuestName      *string                `json:"guest_name" binding:"omitempty,max=255"`
	GuestPhone     *string                `json:"guest_phone" binding:"omitempty,max=50"`
	GuestEmail     *string                `json:"guest_email" binding:"omitempty,email"`
	GuestGSTIN     *string                `json:"guest_gstin" binding:"omitempty,gstin"`
	CheckInDate    *string                `json:"checkin_date" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate   *string                `json:"checkout_date" binding:"omitempty,datetime=2006-01-02"`
	Adults         *int                   `json:"adults" binding:"omitempty,min=0,max=50"`
	Children       *int                   `json:"children" binding:"omitempty,min=0,max=50"`
	ExtraGuests    json.RawMessage        `json:"extra_guests"`
	BookingStatus  *string                `json:"booking_status" binding:"omitempty,oneof=Confirmed Blocked"`
	AdvancePayment *AdvancePaymentRequest `json:"advance_payment"`
	Source         *string                `json:"source" binding:"omitempty,max=100"`
	Remarks        *string                `json:"remarks"`
}

// VersionRequest carries the expected booking version of a status change
type VersionRequest struct {
	Version int `json:"version" binding:"min=0"`
}

// BookingListQuery represents booking listing filters
type BookingListQuery struct {
	Status    string `form:"status" binding:"omitempty,oneof=Confirmed Blocked Cancelled"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	CheckedIn *bool  `form:"checked_in"`
	Search    string `form:"search"`
}

// TokenRequest represents a service or food charge on a booking
type TokenRequest struct {
	Kind   string          `json:"kind" binding:"required,oneof=service food"`
	Item   string          `json:"item" binding:"required,max=255"`
	HSN    string          `json:"hsn" binding:"hsn"`
	Rate   billing.Number  `json:"rate" binding:"min=0"`
	Qty    *billing.Number `json:"qty" binding:"omitempty,min=0"`
	GST    billing.Number  `json:"gst" binding:"min=0,max=100"`
	Amount billing.Number  `json:"amount" binding:"min=0"`
	Edited string          `json:"edited" binding:"omitempty,max=20"`
}

// UpdateTokenRequest represents an edit of an unbilled charge
type UpdateTokenRequest struct {
	Item   *string         `json:"item" binding:"omitempty,min=1,max=255"`
	HSN    *string         `json:"hsn" binding:"omitempty,hsn"`
	Rate   *billing.Number `json:"rate" binding:"omitempty,min=0"`
	Qty    *billing.Number `json:"qty" binding:"omitempty,min=0"`
	GST    *billing.Number `json:"gst" binding:"omitempty,min=0,max=100"`
	Amount *billing.Number `json:"amount" binding:"omitempty,min=0"`
	Days   *int            `json:"days" binding:"omitempty,min=0"`
	Edited string          `json:"edited" binding:"omitempty,max=20"`
}

package request

import "github.com/sangkips/hotelpos-api/pkg/billing"

// LineItemRequest is a bill line as the client currently holds it. Edited
// names the field the user changed last.
type LineItemRequest struct {
	Item   string          `json:"item" binding:"omitempty,max=255"`
	HSN    string          `json:"hsn" binding:"hsn"`
	Rate   billing.Number  `json:"rate"`
	Qty    *billing.Number `json:"qty"`
	GST    billing.Number  `json:"gst"`
	Amount billing.Number  `json:"amount"`
	Days   *int            `json:"days"`
	Edited string          `json:"edited" binding:"omitempty,max=20"`
}

// TotalsRequest is a draft bill
type TotalsRequest struct {
	Items    []LineItemRequest `json:"items" binding:"omitempty,dive"`
	Payments []PaymentRequest  `json:"payments" binding:"omitempty,dive"`
	Advance  billing.Number    `json:"advance"`
}

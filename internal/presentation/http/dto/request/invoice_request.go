package request

// GenerateInvoiceRequest selects what goes on a booking invoice. An empty
// token_ids bills every unbilled charge.
type GenerateInvoiceRequest struct {
	TokenIDs      []string         `json:"token_ids" binding:"omitempty,dive,uuid"`
	ApplyAdvance  bool             `json:"apply_advance"`
	Payments      []PaymentRequest `json:"payments" binding:"omitempty,dive"`
	CustomerName  *string          `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone *string          `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerGSTIN *string          `json:"customer_gstin" binding:"omitempty,gstin"`
	Remarks       *string          `json:"remarks"`
}

// InvoiceListQuery represents invoice listing and export filters
type InvoiceListQuery struct {
	Kind      string `form:"kind" binding:"omitempty,oneof=room restaurant"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	BookingID string `form:"booking_id" binding:"omitempty,uuid"`
	OnlyDue   bool   `form:"only_due"`
	Search    string `form:"search"`
}

package service

import (
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/billing"
)

// BillingService exposes the line-item and totals arithmetic so every
// client renders the same numbers. It holds no state.
type BillingService struct{}

// NewBillingService creates a new billing calculator
func NewBillingService() *BillingService {
	return &BillingService{}
}

// LineItemInput is a line as the client currently holds it. Days, when set,
// prices the line as a per-night room tariff.
type LineItemInput struct {
	Item   string
	HSN    string
	Rate   float64
	Qty    *float64
	GST    float64
	Amount float64
	Days   *int
	Edited string
}

// LineItemResult is a recalculated line
type LineItemResult struct {
	billing.LineItem
	Days *int `json:"days,omitempty"`
}

// RecalculateLine applies one edit event to a line.
func (s *BillingService) RecalculateLine(input *LineItemInput) (*LineItemResult, error) {
	li := billing.LineItem{
		Item:   input.Item,
		HSN:    input.HSN,
		Rate:   input.Rate,
		Qty:    billing.DefaultQty(input.Qty),
		GST:    input.GST,
		Amount: input.Amount,
	}
	if li.Rate < 0 {
		return nil, apperror.NewValidationError("rate", "Rate cannot be negative")
	}
	if li.Qty < 0 {
		return nil, apperror.NewValidationError("qty", "Quantity cannot be negative")
	}
	if li.GST < 0 || li.GST > 100 {
		return nil, apperror.NewValidationError("gst", "GST must be between 0 and 100")
	}
	field := billing.ParseField(input.Edited)

	if input.Days != nil {
		days := *input.Days
		if days < 0 {
			return nil, apperror.NewValidationError("days", "Days cannot be negative")
		}
		li.Qty = float64(days)
		if field != billing.FieldAmount {
			li.Rate = billing.Round2(li.Rate)
			li.Amount = billing.RoomTariffAmount(li.Rate, li.GST, days)
			return &LineItemResult{LineItem: li, Days: input.Days}, nil
		}
	}
	return &LineItemResult{LineItem: li.Recalculate(field), Days: input.Days}, nil
}

// TotalsInput is a draft bill
type TotalsInput struct {
	Items    []billing.LineItem
	Payments []PaymentInput
	Advance  float64
}

// TotalsResult is the money position of a draft bill
type TotalsResult struct {
	billing.Totals
	Paid    float64 `json:"paid"`
	Advance float64 `json:"advance"`
	Due     float64 `json:"due"`
	Excess  float64 `json:"excess"`
}

// Totals aggregates a draft bill and checks its payments. An empty item
// list totals to zero.
func (s *BillingService) Totals(input *TotalsInput) (*TotalsResult, error) {
	if len(input.Items) > 0 {
		if err := billing.ValidateItems(input.Items); err != nil {
			return nil, validationFailure(err)
		}
	}
	if input.Advance < 0 {
		return nil, apperror.NewValidationError("advance", "Advance cannot be negative")
	}
	totals := billing.Aggregate(input.Items)
	if err := billing.ValidatePayments(totals.Payable, paymentEntries(nil, input.Payments...)); err != nil {
		return nil, validationFailure(err)
	}

	amounts := make([]float64, len(input.Payments))
	for i, p := range input.Payments {
		amounts[i] = p.Amount
	}
	return &TotalsResult{
		Totals:  totals,
		Paid:    billing.Sum(amounts...),
		Advance: billing.Round2(input.Advance),
		Due:     billing.Due(totals.Payable, amounts, input.Advance),
		Excess:  billing.Excess(totals.Payable, amounts, input.Advance),
	}, nil
}

package billing

import "github.com/shopspring/decimal"

// Field names the line-item field a user edited last. It decides which of
// rate or amount is derived from the other.
type Field string

const (
	FieldRate   Field = "rate"
	FieldQty    Field = "qty"
	FieldGST    Field = "gst"
	FieldAmount Field = "amount"
	FieldDays   Field = "days"
)

// ParseField maps a client supplied field name to a Field. Unknown or empty
// names fall back to FieldRate, which recomputes the amount.
func ParseField(s string) Field {
	switch Field(s) {
	case FieldQty, FieldGST, FieldAmount, FieldDays:
		return Field(s)
	default:
		return FieldRate
	}
}

// LineItem is a single GST-bearing charge.
type LineItem struct {
	Item   string  `json:"item"`
	HSN    string  `json:"hsn"`
	Rate   float64 `json:"rate"`
	Qty    float64 `json:"qty"`
	GST    float64 `json:"gst"`
	Amount float64 `json:"amount"`
}

func gstFactor(gst float64) decimal.Decimal {
	return decimal.NewFromInt(1).Add(toDec(gst).Div(hundred))
}

// DefaultQty returns 1 for an absent quantity.
func DefaultQty(qty *float64) float64 {
	if qty == nil {
		return 1
	}
	return *qty
}

// ComputeAmount returns round2(rate * qty * (1 + gst/100)).
func ComputeAmount(rate, qty, gst float64) float64 {
	return toFloat(toDec(rate).Mul(toDec(qty)).Mul(gstFactor(gst)))
}

// ComputeRateFromAmount solves ComputeAmount for rate. A zero quantity or a
// zero GST factor yields a rate of 0.
func ComputeRateFromAmount(amount, qty, gst float64) float64 {
	q := toDec(qty)
	f := gstFactor(gst)
	if q.IsZero() || f.IsZero() {
		return 0
	}
	return toFloat(toDec(amount).Div(q).Div(f))
}

// RoomTariffAmount prices a per-night room rate over days nights:
// round2((rate + rate*gst/100) * days). Negative day counts charge nothing.
func RoomTariffAmount(rate, gst float64, days int) float64 {
	if days < 0 {
		days = 0
	}
	r := toDec(rate)
	withTax := r.Add(r.Mul(toDec(gst)).Div(hundred))
	return toFloat(withTax.Mul(decimal.NewFromInt(int64(days))))
}

// Recalculate applies one edit event. Editing the amount derives the rate,
// any other edit derives the amount.
func (li LineItem) Recalculate(edited Field) LineItem {
	if edited == FieldAmount {
		li.Rate = ComputeRateFromAmount(li.Amount, li.Qty, li.GST)
		li.Amount = Round2(li.Amount)
		return li
	}
	li.Amount = ComputeAmount(li.Rate, li.Qty, li.GST)
	return li
}

// Base returns the pre-tax value rate * qty.
func (li LineItem) Base() float64 {
	return toFloat(toDec(li.Rate).Mul(toDec(li.Qty)))
}

// Tax returns the GST on the pre-tax value.
func (li LineItem) Tax() float64 {
	return toFloat(toDec(li.Rate).Mul(toDec(li.Qty)).Mul(toDec(li.GST)).Div(hundred))
}

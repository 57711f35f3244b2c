package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Totals is the aggregate of a set of line items. GST is split evenly into
// SGST and CGST.
type Totals struct {
	TotalBase float64 `json:"total_base"`
	TotalGST  float64 `json:"total_gst"`
	SGST      float64 `json:"sgst"`
	CGST      float64 `json:"cgst"`
	Payable   float64 `json:"payable"`
}

// Aggregate sums items into pre-tax base, GST and payable totals.
func Aggregate(items []LineItem) Totals {
	base := decimal.Zero
	gst := decimal.Zero
	for _, it := range items {
		b := toDec(it.Rate).Mul(toDec(it.Qty))
		base = base.Add(b)
		gst = gst.Add(b.Mul(toDec(it.GST)).Div(hundred))
	}
	half := gst.Div(two)

	return Totals{
		TotalBase: toFloat(base),
		TotalGST:  toFloat(gst),
		SGST:      toFloat(half),
		CGST:      toFloat(half),
		Payable:   toFloat(base.Add(gst)),
	}
}

// Sum adds amounts exactly and rounds the result to two places.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(toDec(a))
	}
	return toFloat(total)
}

func balance(payable float64, payments []float64, advance float64) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(toDec(p))
	}
	return toDec(payable).Sub(paid).Sub(toDec(advance)).Round(2)
}

// Due is payable minus payments and advance, never below zero.
func Due(payable float64, payments []float64, advance float64) float64 {
	b := balance(payable, payments, advance)
	if b.IsNegative() {
		return 0
	}
	return b.InexactFloat64()
}

// Excess is the overpayment Due clamps away. It is reported, never stored as credit.
func Excess(payable float64, payments []float64, advance float64) float64 {
	b := balance(payable, payments, advance)
	if b.IsNegative() {
		return b.Neg().InexactFloat64()
	}
	return 0
}

// ValidationError is the first rule an input broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateItems checks a line-item list and reports the first problem found.
func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return &ValidationError{Field: "items", Message: "At least one item is required"}
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case strings.TrimSpace(it.Item) == "":
			return &ValidationError{Field: field + ".item", Message: "Item name is required"}
		case it.Rate < 0:
			return &ValidationError{Field: field + ".rate", Message: "Rate cannot be negative"}
		case it.Qty < 0:
			return &ValidationError{Field: field + ".qty", Message: "Quantity cannot be negative"}
		case it.GST < 0 || it.GST > 100:
			return &ValidationError{Field: field + ".gst", Message: "GST must be between 0 and 100"}
		}
	}
	return nil
}

// PaymentEntry is the part of a payment the payable check needs.
type PaymentEntry struct {
	Mode   string
	Amount float64
}

// ValidatePayments rejects incomplete payments and a payment total above payable.
func ValidatePayments(payable float64, payments []PaymentEntry) error {
	amounts := make([]float64, 0, len(payments))
	for i, p := range payments {
		field := fmt.Sprintf("payments[%d]", i)
		if strings.TrimSpace(p.Mode) == "" {
			return &ValidationError{Field: field + ".mode", Message: "Mode of payment is required"}
		}
		if p.Amount <= 0 {
			return &ValidationError{Field: field + ".amount", Message: "Payment amount must be greater than zero"}
		}
		amounts = append(amounts, p.Amount)
	}

	paid := Sum(amounts...)
	if toDec(paid).GreaterThan(toDec(payable).Round(2)) {
		return &ValidationError{
			Field:   "payments",
			Message: fmt.Sprintf("Total payments %.2f exceed payable amount %.2f", paid, payable),
		}
	}
	return nil
}

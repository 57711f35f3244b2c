package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"gorm.io/gorm"
)

// Invoice is a GST invoice raised from a booking's unbilled charges or from
// a restaurant table order. Totals are frozen at creation; only payments and
// the due amount change afterwards.
type Invoice struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	HotelID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_hotel_no;index:idx_invoices_hotel_date" json:"hotel_id"`
	InvoiceNo      string           `gorm:"size:100;not null;uniqueIndex:idx_invoices_hotel_no" json:"invoice_no"`
	Kind           enum.InvoiceKind `gorm:"size:20;not null;default:'room'" json:"kind"`
	Date           time.Time        `gorm:"type:date;not null;index:idx_invoices_hotel_date" json:"date"`
	Time           string           `gorm:"size:8" json:"time"`
	BookingID      *uuid.UUID       `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	TableOrderID   *uuid.UUID       `gorm:"type:uuid;index" json:"table_order_id,omitempty"`
	CustomerName   string           `gorm:"size:255" json:"customer_name"`
	CustomerPhone  string           `gorm:"size:50" json:"customer_phone"`
	CustomerGSTIN  *string          `gorm:"size:15;column:customer_gstin" json:"customer_gstin,omitempty"`
	TotalAmount    float64          `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Tax            float64          `gorm:"type:decimal(15,2);default:0" json:"tax"`
	SGST           float64          `gorm:"type:decimal(15,2);default:0;column:sgst" json:"sgst"`
	CGST           float64          `gorm:"type:decimal(15,2);default:0;column:cgst" json:"cgst"`
	PayableAmount  float64          `gorm:"type:decimal(15,2);default:0" json:"payable_amount"`
	AdvanceApplied float64          `gorm:"type:decimal(15,2);default:0" json:"advance_applied"`
	Paid           float64          `gorm:"type:decimal(15,2);default:0" json:"paid"`
	Due            float64          `gorm:"type:decimal(15,2);default:0" json:"due"`
	Remarks        *string          `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"line_items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// ApplyTotals copies aggregated totals onto the invoice.
func (i *Invoice) ApplyTotals(t billing.Totals) {
	i.TotalAmount = t.TotalBase
	i.Tax = t.TotalGST
	i.SGST = t.SGST
	i.CGST = t.CGST
	i.PayableAmount = t.Payable
}

// PaymentAmounts returns the amounts paid against the invoice.
func (i *Invoice) PaymentAmounts() []float64 {
	amounts := make([]float64, 0, len(i.Payments))
	for _, p := range i.Payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}

// Settle recomputes Paid and Due from the attached payments.
func (i *Invoice) Settle() {
	amounts := i.PaymentAmounts()
	i.Paid = billing.Sum(amounts...)
	i.Due = billing.Due(i.PayableAmount, amounts, i.AdvanceApplied)
}

// InvoiceLine is one billed charge, copied from a token or an order line
type InvoiceLine struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	TokenID   *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"token_id,omitempty"`
	Kind      string     `gorm:"size:20" json:"kind"`
	Item      string     `gorm:"size:255;not null" json:"item"`
	HSN       string     `gorm:"size:8;column:hsn" json:"hsn"`
	RoomNo    string     `gorm:"size:20" json:"room_no,omitempty"`
	Days      int        `gorm:"default:0" json:"days,omitempty"`
	Rate      float64    `gorm:"type:decimal(15,2);not null" json:"rate"`
	Qty       float64    `gorm:"type:decimal(10,2);not null" json:"qty"`
	GST       float64    `gorm:"type:decimal(5,2);not null;column:gst" json:"gst"`
	Amount    float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
}

func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// LineItem returns the line as a billing line item.
func (l InvoiceLine) LineItem() billing.LineItem {
	return billing.LineItem{Item: l.Item, HSN: l.HSN, Rate: l.Rate, Qty: l.Qty, GST: l.GST, Amount: l.Amount}
}

// InvoiceLineFromToken copies a booking charge onto an invoice line.
func InvoiceLineFromToken(t Token) InvoiceLine {
	li := t.LineItem()
	id := t.ID
	return InvoiceLine{
		TokenID: &id,
		Kind:    t.Kind.String(),
		Item:    li.Item,
		HSN:     li.HSN,
		RoomNo:  t.RoomNo,
		Days:    t.Days,
		Rate:    li.Rate,
		Qty:     li.Qty,
		GST:     li.GST,
		Amount:  li.Amount,
	}
}

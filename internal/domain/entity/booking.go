package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"github.com/sangkips/hotelpos-api/pkg/occupancy"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking is a reservation for one or more rooms. Charges and payments hang
// off it as separate rows so each can be appended without rewriting the booking.
type Booking struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	HotelID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_hotel_no;index:idx_bookings_hotel_dates" json:"hotel_id"`
	BookingNo      string             `gorm:"size:100;not null;uniqueIndex:idx_bookings_hotel_no" json:"booking_no"`
	GuestID        *uuid.UUID         `gorm:"type:uuid;index" json:"guest_id,omitempty"`
	GuestName      string             `gorm:"size:255;not null" json:"guest_name"`
	GuestPhone     string             `gorm:"size:50" json:"guest_phone"`
	GuestEmail     *string            `gorm:"size:255" json:"guest_email,omitempty"`
	GuestGSTIN     *string            `gorm:"size:15;column:guest_gstin" json:"guest_gstin,omitempty"`
	CheckInDate    time.Time          `gorm:"type:date;not null;index:idx_bookings_hotel_dates" json:"checkin_date"`
	CheckOutDate   time.Time          `gorm:"type:date;not null;index:idx_bookings_hotel_dates" json:"checkout_date"`
	Adults         int                `gorm:"default:1" json:"adults"`
	Children       int                `gorm:"default:0" json:"children"`
	ExtraGuests    datatypes.JSON     `json:"extra_guests,omitempty"`
	BookingStatus  enum.BookingStatus `gorm:"size:20;not null;default:'Confirmed'" json:"booking_status"`
	CheckedIn      bool               `gorm:"not null;default:false" json:"checked_in"`
	CheckedOut     bool               `gorm:"not null;default:false" json:"checked_out"`
	CheckedInAt    *time.Time         `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time         `json:"checked_out_at,omitempty"`
	AdvancePayment AdvancePayment     `gorm:"type:jsonb;serializer:json" json:"advance_payment"`
	AdvanceApplied bool               `gorm:"not null;default:false" json:"advance_applied"`
	Source         *string            `gorm:"size:50" json:"source,omitempty"`
	Remarks        *string            `gorm:"type:text" json:"remarks,omitempty"`
	Version        int                `gorm:"not null;default:1" json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Guest    *Guest    `gorm:"foreignKey:GuestID" json:"-"`
	Tokens   []Token   `gorm:"foreignKey:BookingID" json:"tokens,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsClosed reports whether the booking no longer accepts edits.
func (b *Booking) IsClosed() bool {
	return b.BookingStatus == enum.BookingStatusCancelled || b.CheckedOut
}

// TokensOf returns the charges of one kind.
func (b *Booking) TokensOf(kind enum.TokenKind) []Token {
	var out []Token
	for _, t := range b.Tokens {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// LineItems returns every charge on the booking as billing line items.
func (b *Booking) LineItems() []billing.LineItem {
	items := make([]billing.LineItem, 0, len(b.Tokens))
	for _, t := range b.Tokens {
		items = append(items, t.LineItem())
	}
	return items
}

// PaymentAmounts returns the amounts paid against the booking.
func (b *Booking) PaymentAmounts() []float64 {
	amounts := make([]float64, 0, len(b.Payments))
	for _, p := range b.Payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}

// Occupancy projects the booking onto the occupancy model, keyed by room ID
// so renumbering a room keeps its bookings. Room tokens
// without their own dates inherit the booking's stay.
func (b *Booking) Occupancy() occupancy.Booking {
	ob := occupancy.Booking{
		ID:         b.ID.String(),
		CheckIn:    b.CheckInDate,
		CheckOut:   b.CheckOutDate,
		Status:     occupancy.Status(b.BookingStatus),
		CheckedIn:  b.CheckedIn,
		CheckedOut: b.CheckedOut,
	}
	for _, t := range b.Tokens {
		key := t.RoomKey()
		if t.Kind != enum.TokenKindRoom || key == "" {
			continue
		}
		stay := occupancy.Stay{Room: key, In: b.CheckInDate, Out: b.CheckOutDate}
		if t.InDate != nil {
			stay.In = *t.InDate
		}
		if t.OutDate != nil {
			stay.Out = *t.OutDate
		}
		ob.Rooms = append(ob.Rooms, stay)
	}
	return ob
}

// AdvancePayment is money taken before the stay
type AdvancePayment struct {
	Mode   string     `json:"mode,omitempty"`
	Amount float64    `json:"amount"`
	Date   *time.Time `json:"date,omitempty"`
	Remark string     `json:"remark,omitempty"`
}

// Scan implements the sql.Scanner interface for AdvancePayment
func (a *AdvancePayment) Scan(value interface{}) error {
	if value == nil {
		*a = AdvancePayment{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan AdvancePayment: unsupported type")
	}
	return json.Unmarshal(bytes, a)
}

// Value implements the driver.Valuer interface for AdvancePayment
func (a AdvancePayment) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Token is a billable charge on a booking: a room tariff, a service or food.
// Invoice flips to true once, when the charge is pulled into an invoice.
type Token struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"hotel_id"`
	BookingID uuid.UUID      `gorm:"type:uuid;not null;index:idx_tokens_booking_invoice" json:"booking_id"`
	Kind      enum.TokenKind `gorm:"size:20;not null" json:"kind"`
	Item      string         `gorm:"size:255;not null" json:"item"`
	HSN       string         `gorm:"size:8;column:hsn" json:"hsn"`
	RoomID    *uuid.UUID     `gorm:"type:uuid;index" json:"room_id,omitempty"`
	RoomNo    string         `gorm:"size:20" json:"room_no,omitempty"`
	InDate    *time.Time     `gorm:"type:date" json:"in_date,omitempty"`
	OutDate   *time.Time     `gorm:"type:date" json:"out_date,omitempty"`
	Days      int            `gorm:"default:0" json:"days,omitempty"`
	Rate      float64        `gorm:"type:decimal(15,2);not null;default:0" json:"rate"`
	Qty       float64        `gorm:"type:decimal(10,2);not null" json:"qty"`
	GST       float64        `gorm:"type:decimal(5,2);not null;default:0;column:gst" json:"gst"`
	Amount    float64        `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	Invoice   bool           `gorm:"not null;default:false;index:idx_tokens_booking_invoice" json:"invoice"`
	InvoiceID *uuid.UUID     `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RoomKey is the occupancy key of the room a token holds, empty for charges
// not tied to a room.
func (t Token) RoomKey() string {
	if t.RoomID == nil {
		return ""
	}
	return t.RoomID.String()
}

func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Token) TableName() string {
	return "booking_tokens"
}

// LineItem returns the charge as a billing line item. Room tariffs fold the
// night count into the quantity so totals price them the same way.
func (t Token) LineItem() billing.LineItem {
	qty := t.Qty
	if t.Kind == enum.TokenKindRoom {
		qty = float64(t.Days)
	}
	return billing.LineItem{
		Item:   t.Item,
		HSN:    t.HSN,
		Rate:   t.Rate,
		Qty:    qty,
		GST:    t.GST,
		Amount: t.Amount,
	}
}

// Payment is money received against a booking or an invoice
type Payment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"hotel_id"`
	BookingID *uuid.UUID     `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	InvoiceID *uuid.UUID     `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	Date      time.Time      `gorm:"not null" json:"time_stamp"`
	Mode      string         `gorm:"size:50;not null" json:"mode"`
	Amount    float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Remark    *string        `gorm:"type:text" json:"remark,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}

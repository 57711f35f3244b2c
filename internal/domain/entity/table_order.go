package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TableOrder is a running restaurant order on a table
type TableOrder struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	HotelID    uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_table_orders_hotel_no" json:"hotel_id"`
	OrderNo    string                `gorm:"size:100;not null;uniqueIndex:idx_table_orders_hotel_no" json:"order_no"`
	TableID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"table_id"`
	TableNo    string                `gorm:"size:20" json:"table_no"`
	GuestName  string                `gorm:"size:255" json:"guest_name"`
	GuestPhone string                `gorm:"size:50" json:"guest_phone"`
	Covers     int                   `gorm:"default:1" json:"covers"`
	Status     enum.TableOrderStatus `gorm:"default:0;index" json:"status"`
	InvoiceID  *uuid.UUID            `gorm:"type:uuid" json:"invoice_id,omitempty"`
	BookingID  *uuid.UUID            `gorm:"type:uuid" json:"booking_id,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	DeletedAt  gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Lines []TableOrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new table order
func (o *TableOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TableOrder model
func (TableOrder) TableName() string {
	return "table_orders"
}

// LineItems returns the order lines as billing line items.
func (o *TableOrder) LineItems() []billing.LineItem {
	items := make([]billing.LineItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, l.LineItem())
	}
	return items
}

// TableOrderLine is one menu item on an order
type TableOrderLine struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID *uuid.UUID     `gorm:"type:uuid" json:"menu_item_id,omitempty"`
	KOTID      *uuid.UUID     `gorm:"type:uuid;column:kot_id" json:"kot_id,omitempty"`
	Item       string         `gorm:"size:255;not null" json:"item"`
	HSN        string         `gorm:"size:8;column:hsn" json:"hsn"`
	Rate       float64        `gorm:"type:decimal(15,2);not null" json:"rate"`
	Qty        float64        `gorm:"type:decimal(10,2);not null" json:"qty"`
	GST        float64        `gorm:"type:decimal(5,2);not null;column:gst" json:"gst"`
	Amount     float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note       *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *TableOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (TableOrderLine) TableName() string {
	return "table_order_lines"
}

func (l TableOrderLine) LineItem() billing.LineItem {
	return billing.LineItem{Item: l.Item, HSN: l.HSN, Rate: l.Rate, Qty: l.Qty, GST: l.GST, Amount: l.Amount}
}

// KitchenOrderTicket is the slip sent to the kitchen for one round of items
type KitchenOrderTicket struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_kots_hotel_no;index:idx_kots_hotel_status" json:"hotel_id"`
	KOTNo     string         `gorm:"size:100;not null;uniqueIndex:idx_kots_hotel_no;column:kot_no" json:"kot_no"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	TableNo   string         `gorm:"size:20" json:"table_no"`
	Items     datatypes.JSON `json:"items"`
	Status    enum.KOTStatus `gorm:"default:0;index:idx_kots_hotel_status" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (k *KitchenOrderTicket) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (KitchenOrderTicket) TableName() string {
	return "kitchen_order_tickets"
}

// KOTItem is what the kitchen sees for one line
type KOTItem struct {
	Item string  `json:"item"`
	Qty  float64 `json:"qty"`
	Note string  `json:"note,omitempty"`
}

// SetItems snapshots items onto the ticket.
func (k *KitchenOrderTicket) SetItems(items []KOTItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	k.Items = datatypes.JSON(raw)
	return nil
}

// DecodeItems reads the snapshot back.
func (k *KitchenOrderTicket) DecodeItems() ([]KOTItem, error) {
	var items []KOTItem
	if len(k.Items) == 0 {
		return items, nil
	}
	err := json.Unmarshal(k.Items, &items)
	return items, err
}

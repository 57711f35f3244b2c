package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hotel is a property. Every other record belongs to exactly one hotel.
type Hotel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	GSTIN     *string        `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Settings  HotelSettings  `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new hotel
func (h *Hotel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Hotel model
func (Hotel) TableName() string {
	return "hotels"
}

// HotelSettings holds the per-hotel billing configuration
type HotelSettings struct {
	// Document numbering. Prefixes are stored without the trailing dash.
	InvoicePrefix           string `json:"invoice_prefix,omitempty"`
	BookingPrefix           string `json:"booking_prefix,omitempty"`
	RestaurantInvoicePrefix string `json:"restaurant_invoice_prefix,omitempty"`
	KOTPrefix               string `json:"kot_prefix,omitempty"`
	OrderPrefix             string `json:"order_prefix,omitempty"`

	DefaultGST float64 `json:"default_gst"`
	Currency   string  `json:"currency,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`

	CheckInTime  string `json:"check_in_time,omitempty"`
	CheckOutTime string `json:"check_out_time,omitempty"`
}

// WithDefaults fills every empty field from d.
func (s HotelSettings) WithDefaults(d HotelSettings) HotelSettings {
	if s.InvoicePrefix == "" {
		s.InvoicePrefix = d.InvoicePrefix
	}
	if s.BookingPrefix == "" {
		s.BookingPrefix = d.BookingPrefix
	}
	if s.RestaurantInvoicePrefix == "" {
		s.RestaurantInvoicePrefix = d.RestaurantInvoicePrefix
	}
	if s.KOTPrefix == "" {
		s.KOTPrefix = d.KOTPrefix
	}
	if s.OrderPrefix == "" {
		s.OrderPrefix = d.OrderPrefix
	}
	if s.DefaultGST == 0 {
		s.DefaultGST = d.DefaultGST
	}
	if s.Currency == "" {
		s.Currency = d.Currency
	}
	if s.Timezone == "" {
		s.Timezone = d.Timezone
	}
	if s.CheckInTime == "" {
		s.CheckInTime = d.CheckInTime
	}
	if s.CheckOutTime == "" {
		s.CheckOutTime = d.CheckOutTime
	}
	return s
}

// Location resolves the hotel's timezone, falling back to UTC.
func (s HotelSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Scan implements the sql.Scanner interface for HotelSettings
func (s *HotelSettings) Scan(value interface{}) error {
	if value == nil {
		*s = HotelSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan HotelSettings: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for HotelSettings
func (s HotelSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

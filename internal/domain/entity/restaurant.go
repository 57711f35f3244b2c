package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a dish or drink on the restaurant menu
type MenuItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"hotel_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Category  *string        `gorm:"size:100;index" json:"category,omitempty"`
	HSN       string         `gorm:"size:8;column:hsn" json:"hsn"`
	Rate      float64        `gorm:"type:decimal(15,2);not null;default:0" json:"rate"`
	GST       float64        `gorm:"type:decimal(5,2);not null;default:0;column:gst" json:"gst"`
	Veg       bool           `gorm:"not null" json:"veg"`
	Available bool           `gorm:"not null" json:"available"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// DiningTable is a restaurant table. Occupied is set while an order is open on it.
type DiningTable struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_tables_hotel_no" json:"hotel_id"`
	TableNo   string         `gorm:"size:20;not null;uniqueIndex:idx_tables_hotel_no" json:"table_no"`
	Seats     int            `gorm:"default:4" json:"seats"`
	Section   *string        `gorm:"size:100" json:"section,omitempty"`
	Occupied  bool           `gorm:"not null;default:false" json:"occupied"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *DiningTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (DiningTable) TableName() string {
	return "dining_tables"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomCategory carries the tariff shared by a group of rooms
type RoomCategory struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"hotel_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Rate         float64        `gorm:"type:decimal(15,2);not null;default:0" json:"rate"`
	GST          float64        `gorm:"type:decimal(5,2);not null;default:0;column:gst" json:"gst"`
	HSN          string         `gorm:"size:8;column:hsn" json:"hsn"`
	MaxOccupancy int            `gorm:"default:2" json:"max_occupancy"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *RoomCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (RoomCategory) TableName() string {
	return "room_categories"
}

// Room is a bookable room
type Room struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_rooms_hotel_room_no" json:"hotel_id"`
	RoomNo     string         `gorm:"size:20;not null;uniqueIndex:idx_rooms_hotel_room_no" json:"room_no"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Floor      *string        `gorm:"size:20" json:"floor,omitempty"`
	Active     bool           `gorm:"not null" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *RoomCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Room) TableName() string {
	return "rooms"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCounter is the last number issued for a (hotel, prefix) pair
type DocumentCounter struct {
	HotelID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"hotel_id"`
	Prefix    string    `gorm:"size:50;primaryKey" json:"prefix"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DocumentCounter) TableName() string {
	return "document_counters"
}

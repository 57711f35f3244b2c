package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is a person who stays at or dines in the hotel
type Guest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HotelID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_guests_hotel_phone" json:"hotel_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       string         `gorm:"size:50;index:idx_guests_hotel_phone" json:"phone"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Nationality *string        `gorm:"size:100" json:"nationality,omitempty"`
	IDProofType *string        `gorm:"size:50" json:"id_proof_type,omitempty"`
	IDProofNo   *string        `gorm:"size:100" json:"id_proof_no,omitempty"`
	GSTIN       *string        `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new guest
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Guest model
func (Guest) TableName() string {
	return "guests"
}

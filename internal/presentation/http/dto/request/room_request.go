package request

import "github.com/sangkips/hotelpos-api/pkg/billing"

// CategoryRequest represents a room category
type CategoryRequest struct {
	Name         string         `json:"name" binding:"required,max=100"`
	Rate         billing.Number `json:"rate" binding:"min=0"`
	GST          billing.Number `json:"gst" binding:"min=0,max=100"`
	HSN          string         `json:"hsn" binding:"hsn"`
	MaxOccupancy int            `json:"max_occupancy" binding:"omitempty,min=1,max=20"`
	Description  *string        `json:"description"`
}

// RoomRequest represents a room
type RoomRequest struct {
	RoomNo     string  `json:"room_no" binding:"required,max=20"`
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Floor      *string `json:"floor" binding:"omitempty,max=20"`
	Active     *bool   `json:"active"`
}

// DateRangeQuery represents a from/to date range in the query string
type DateRangeQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// OccupiedQuery asks whether a room is taken on a night
type OccupiedQuery struct {
	RoomNo string `form:"room_no" binding:"required"`
	Date   string `form:"date" binding:"required,datetime=2006-01-02"`
}

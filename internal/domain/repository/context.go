package repository

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const hotelIDKey ctxKey = "hotel_id"

// WithHotel adds the hotel ID to the context. Every hotel-owned query reads it.
func WithHotel(ctx context.Context, hotelID uuid.UUID) context.Context {
	return context.WithValue(ctx, hotelIDKey, hotelID)
}

// HotelFromContext extracts the hotel ID from the context
func HotelFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(hotelIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

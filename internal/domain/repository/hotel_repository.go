package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

// HotelRepository defines the interface for hotel data operations
type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Hotel, error)
	Update(ctx context.Context, hotel *entity.Hotel) error
	List(ctx context.Context, params pagination.Params) ([]entity.Hotel, int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// GuestRepository defines the interface for guest data operations
type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Guest, error)
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, search string) ([]entity.Guest, int64, error)
}

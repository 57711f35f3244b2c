package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
)

// RoomRepository defines the interface for rooms and their categories
type RoomRepository interface {
	CreateCategory(ctx context.Context, category *entity.RoomCategory) error
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.RoomCategory, error)
	UpdateCategory(ctx context.Context, category *entity.RoomCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]entity.RoomCategory, error)
	CountRoomsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetByRoomNo(ctx context.Context, roomNo string) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns rooms with their category, ordered by room number.
	List(ctx context.Context, activeOnly bool) ([]entity.Room, error)
}

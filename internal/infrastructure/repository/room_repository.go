package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) domainRepo.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) CreateCategory(ctx context.Context, category *entity.RoomCategory) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	category.HotelID = id
	return conn(ctx, r.db).Create(category).Error
}

func (r *roomRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.RoomCategory, error) {
	var category entity.RoomCategory
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *roomRepository) UpdateCategory(ctx context.Context, category *entity.RoomCategory) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Save(category).Error
}

func (r *roomRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Delete(&entity.RoomCategory{}, "id = ?", id).Error
}

func (r *roomRepository) ListCategories(ctx context.Context) ([]entity.RoomCategory, error) {
	var categories []entity.RoomCategory
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *roomRepository) CountRoomsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Room{}).Scopes(HotelScope(ctx)).
		Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	room.HotelID = id
	return translate(conn(ctx, r.db).Create(room).Error)
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).Preload("Category").First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &room, err
}

func (r *roomRepository) GetByRoomNo(ctx context.Context, roomNo string) (*entity.Room, error) {
	var room entity.Room
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).Preload("Category").First(&room, "room_no = ?", roomNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &room, err
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	room.Category = nil
	return translate(conn(ctx, r.db).Scopes(HotelScope(ctx)).Save(room).Error)
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Delete(&entity.Room{}, "id = ?", id).Error
}

func (r *roomRepository) List(ctx context.Context, activeOnly bool) ([]entity.Room, error) {
	var rooms []entity.Room
	query := conn(ctx, r.db).Scopes(HotelScope(ctx)).Preload("Category")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("room_no ASC").Find(&rooms).Error
	return rooms, err
}

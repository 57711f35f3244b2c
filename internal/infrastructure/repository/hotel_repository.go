package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type hotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db *gorm.DB) domainRepo.HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *entity.Hotel) error {
	return translate(conn(ctx, r.db).Create(hotel).Error)
}

func (r *hotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := conn(ctx, r.db).First(&hotel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &hotel, err
}

func (r *hotelRepository) GetBySlug(ctx context.Context, slug string) (*entity.Hotel, error) {
	var hotel entity.Hotel
	err := conn(ctx, r.db).First(&hotel, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &hotel, err
}

func (r *hotelRepository) Update(ctx context.Context, hotel *entity.Hotel) error {
	return translate(conn(ctx, r.db).Save(hotel).Error)
}

func (r *hotelRepository) List(ctx context.Context, params pagination.Params) ([]entity.Hotel, int64, error) {
	var hotels []entity.Hotel
	var total int64

	query := conn(ctx, r.db).Model(&entity.Hotel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).Order("name ASC").Find(&hotels).Error
	return hotels, total, err
}

func (r *hotelRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Hotel{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

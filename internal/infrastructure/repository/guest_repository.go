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

type guestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *gorm.DB) domainRepo.GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	guest.HotelID = id
	return conn(ctx, r.db).Create(guest).Error
}

func (r *guestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	var guest entity.Guest
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).First(&guest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (r *guestRepository) GetByPhone(ctx context.Context, phone string) (*entity.Guest, error) {
	var guest entity.Guest
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("phone = ?", phone).
		Order("created_at ASC").
		First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Save(guest).Error
}

func (r *guestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Delete(&entity.Guest{}, "id = ?", id).Error
}

func (r *guestRepository) List(ctx context.Context, params pagination.Params, search string) ([]entity.Guest, int64, error) {
	var guests []entity.Guest
	var total int64

	query := conn(ctx, r.db).Model(&entity.Guest{}).Scopes(HotelScope(ctx))
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).Order("name ASC").Find(&guests).Error
	return guests, total, err
}

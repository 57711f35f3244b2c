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

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu item repository
func NewMenuRepository(db *gorm.DB) domainRepo.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	item.HotelID = id
	return conn(ctx, r.db).Create(item).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Save(item).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuRepository) List(ctx context.Context, filter domainRepo.MenuFilter, params pagination.Params) ([]entity.MenuItem, int64, error) {
	var items []entity.MenuItem
	var total int64

	query := conn(ctx, r.db).Model(&entity.MenuItem{}).Scopes(HotelScope(ctx))
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).Order("category ASC, name ASC").Find(&items).Error
	return items, total, err
}

type diningTableRepository struct {
	db *gorm.DB
}

// NewDiningTableRepository creates a new dining table repository
func NewDiningTableRepository(db *gorm.DB) domainRepo.DiningTableRepository {
	return &diningTableRepository{db: db}
}

func (r *diningTableRepository) Create(ctx context.Context, table *entity.DiningTable) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	table.HotelID = id
	return translate(conn(ctx, r.db).Create(table).Error)
}

func (r *diningTableRepository) get(ctx context.Context, id uuid.UUID, lock bool) (*entity.DiningTable, error) {
	var table entity.DiningTable
	query := conn(ctx, r.db).Scopes(HotelScope(ctx))
	if lock {
		query = query.Clauses(forUpdate())
	}
	err := query.First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *diningTableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	return r.get(ctx, id, false)
}

func (r *diningTableRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	return r.get(ctx, id, true)
}

func (r *diningTableRepository) Update(ctx context.Context, table *entity.DiningTable) error {
	return translate(conn(ctx, r.db).Scopes(HotelScope(ctx)).Save(table).Error)
}

func (r *diningTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Scopes(HotelScope(ctx)).Delete(&entity.DiningTable{}, "id = ?", id).Error
}

func (r *diningTableRepository) List(ctx context.Context) ([]entity.DiningTable, error) {
	var tables []entity.DiningTable
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).Order("table_no ASC").Find(&tables).Error
	return tables, err
}

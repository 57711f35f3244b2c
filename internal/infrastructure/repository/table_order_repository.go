package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type tableOrderRepository struct {
	db *gorm.DB
}

// NewTableOrderRepository creates a new restaurant order repository
func NewTableOrderRepository(db *gorm.DB) domainRepo.TableOrderRepository {
	return &tableOrderRepository{db: db}
}

func (r *tableOrderRepository) Create(ctx context.Context, order *entity.TableOrder) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	order.HotelID = id
	return translate(conn(ctx, r.db).Create(order).Error)
}

func (r *tableOrderRepository) get(ctx context.Context, lock bool, query string, args ...interface{}) (*entity.TableOrder, error) {
	var order entity.TableOrder
	db := conn(ctx, r.db).Scopes(HotelScope(ctx))
	if lock {
		db = db.Clauses(forUpdate())
	}
	err := db.Where(query, args...).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = conn(ctx, r.db).Where("order_id = ?", order.ID).Order("created_at ASC").Find(&order.Lines).Error
	return &order, err
}

func (r *tableOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error) {
	return r.get(ctx, false, "id = ?", id)
}

func (r *tableOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error) {
	return r.get(ctx, true, "id = ?", id)
}

func (r *tableOrderRepository) GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.TableOrder, error) {
	return r.get(ctx, false, "table_id = ? AND status = ?", tableID, enum.TableOrderStatusOpen)
}

func (r *tableOrderRepository) Update(ctx context.Context, order *entity.TableOrder) error {
	return conn(ctx, r.db).Model(&entity.TableOrder{}).
		Scopes(HotelScope(ctx)).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"guest_name":  order.GuestName,
			"guest_phone": order.GuestPhone,
			"covers":      order.Covers,
			"status":      order.Status,
			"invoice_id":  order.InvoiceID,
			"booking_id":  order.BookingID,
		}).Error
}

func (r *tableOrderRepository) List(ctx context.Context, filter domainRepo.TableOrderFilter, params pagination.Params) ([]entity.TableOrder, int64, error) {
	var orders []entity.TableOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.TableOrder{}).Scopes(HotelScope(ctx))
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TableID != nil {
		query = query.Where("table_id = ?", *filter.TableID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).
		Preload("Lines").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func (r *tableOrderRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.TableOrder{}).
		Scopes(HotelScope(ctx)).
		Where("status = ?", enum.TableOrderStatusOpen).
		Count(&count).Error
	return count, err
}

func (r *tableOrderRepository) AddLines(ctx context.Context, lines []entity.TableOrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&lines).Error
}

func (r *tableOrderRepository) GetLine(ctx context.Context, id uuid.UUID) (*entity.TableOrderLine, error) {
	var line entity.TableOrderLine
	err := conn(ctx, r.db).First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *tableOrderRepository) UpdateLine(ctx context.Context, line *entity.TableOrderLine) error {
	return conn(ctx, r.db).Save(line).Error
}

func (r *tableOrderRepository) DeleteLine(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.TableOrderLine{}, "id = ?", id).Error
}

type kotRepository struct {
	db *gorm.DB
}

// NewKOTRepository creates a new kitchen order ticket repository
func NewKOTRepository(db *gorm.DB) domainRepo.KOTRepository {
	return &kotRepository{db: db}
}

func (r *kotRepository) Create(ctx context.Context, kot *entity.KitchenOrderTicket) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	kot.HotelID = id
	return translate(conn(ctx, r.db).Create(kot).Error)
}

func (r *kotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.KitchenOrderTicket, error) {
	var kot entity.KitchenOrderTicket
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).First(&kot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &kot, err
}

func (r *kotRepository) Update(ctx context.Context, kot *entity.KitchenOrderTicket) error {
	return conn(ctx, r.db).Model(&entity.KitchenOrderTicket{}).
		Scopes(HotelScope(ctx)).
		Where("id = ?", kot.ID).
		Update("status", kot.Status).Error
}

func (r *kotRepository) List(ctx context.Context, status *enum.KOTStatus, orderID *uuid.UUID) ([]entity.KitchenOrderTicket, error) {
	var kots []entity.KitchenOrderTicket
	query := conn(ctx, r.db).Scopes(HotelScope(ctx))
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if orderID != nil {
		query = query.Where("order_id = ?", *orderID)
	}
	err := query.Order("created_at ASC").Find(&kots).Error
	return kots, err
}

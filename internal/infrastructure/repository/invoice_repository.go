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

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	invoice.HotelID = id
	for i := range invoice.Payments {
		invoice.Payments[i].HotelID = id
	}
	return translate(conn(ctx, r.db).Create(invoice).Error)
}

func (r *invoiceRepository) load(ctx context.Context, id uuid.UUID, lock bool) (*entity.Invoice, error) {
	var invoice entity.Invoice
	query := conn(ctx, r.db).Scopes(HotelScope(ctx))
	if lock {
		query = query.Clauses(forUpdate())
	}
	err := query.First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	db := conn(ctx, r.db)
	if err := db.Where("invoice_id = ?", id).Order("created_at ASC").Find(&invoice.Lines).Error; err != nil {
		return nil, err
	}
	if err := db.Where("invoice_id = ?", id).Order("date ASC").Find(&invoice.Payments).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.load(ctx, id, false)
}

func (r *invoiceRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.load(ctx, id, true)
}

func (r *invoiceRepository) UpdateSettlement(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(HotelScope(ctx)).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{"paid": invoice.Paid, "due": invoice.Due}).Error
}

func (r *invoiceRepository) filtered(ctx context.Context, filter domainRepo.InvoiceFilter) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.Invoice{}).Scopes(HotelScope(ctx))
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.OnlyDue {
		query = query.Where("due > 0")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("invoice_no ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?", like, like, like)
	}
	return query
}

func (r *invoiceRepository) List(ctx context.Context, filter domainRepo.InvoiceFilter, params pagination.Params) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).
		Order("date DESC, created_at DESC").
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) ListAll(ctx context.Context, filter domainRepo.InvoiceFilter) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.filtered(ctx, filter).Order("date ASC, created_at ASC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) OutstandingDue(ctx context.Context) (float64, error) {
	var total float64
	err := conn(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(HotelScope(ctx)).
		Select("COALESCE(SUM(due), 0)").
		Scan(&total).Error
	return total, err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

// InvoiceFilter narrows an invoice listing
type InvoiceFilter struct {
	Kind      *enum.InvoiceKind
	From      *time.Time
	To        *time.Time
	BookingID *uuid.UUID
	OnlyDue   bool
	Search    string // invoice number or customer
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create inserts the invoice with its lines and payments.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// UpdateSettlement saves Paid and Due.
	UpdateSettlement(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter, params pagination.Params) ([]entity.Invoice, int64, error)
	// ListAll returns every invoice matching filter, for export.
	ListAll(ctx context.Context, filter InvoiceFilter) ([]entity.Invoice, error)
	// OutstandingDue sums Due over all invoices.
	OutstandingDue(ctx context.Context) (float64, error)
}

// NumberSource names the table and column holding already issued document
// numbers, used to seed a counter the first time it is used.
type NumberSource struct {
	Table  string
	Column string
}

// CounterRepository issues sequential document numbers
type CounterRepository interface {
	// Next returns the next number for prefix, formatted as "prefix-n".
	Next(ctx context.Context, prefix string, source NumberSource) (string, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, hotelID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys
	DeleteExpired(ctx context.Context) error
}

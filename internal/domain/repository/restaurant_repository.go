package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

// MenuFilter narrows a menu listing
type MenuFilter struct {
	Search        string
	Category      string
	AvailableOnly bool
}

// MenuRepository defines the interface for menu items
type MenuRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MenuFilter, params pagination.Params) ([]entity.MenuItem, int64, error)
}

// DiningTableRepository defines the interface for restaurant tables
type DiningTableRepository interface {
	Create(ctx context.Context, table *entity.DiningTable) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error)
	Update(ctx context.Context, table *entity.DiningTable) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.DiningTable, error)
}

// TableOrderFilter narrows an order listing
type TableOrderFilter struct {
	Status  *enum.TableOrderStatus
	TableID *uuid.UUID
}

// TableOrderRepository defines the interface for restaurant orders
type TableOrderRepository interface {
	Create(ctx context.Context, order *entity.TableOrder) error
	// GetByID loads the order with its lines.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error)
	GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.TableOrder, error)
	Update(ctx context.Context, order *entity.TableOrder) error
	List(ctx context.Context, filter TableOrderFilter, params pagination.Params) ([]entity.TableOrder, int64, error)
	CountOpen(ctx context.Context) (int64, error)

	AddLines(ctx context.Context, lines []entity.TableOrderLine) error
	GetLine(ctx context.Context, id uuid.UUID) (*entity.TableOrderLine, error)
	UpdateLine(ctx context.Context, line *entity.TableOrderLine) error
	DeleteLine(ctx context.Context, id uuid.UUID) error
}

// KOTRepository defines the interface for kitchen order tickets
type KOTRepository interface {
	Create(ctx context.Context, kot *entity.KitchenOrderTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.KitchenOrderTicket, error)
	Update(ctx context.Context, kot *entity.KitchenOrderTicket) error
	List(ctx context.Context, status *enum.KOTStatus, orderID *uuid.UUID) ([]entity.KitchenOrderTicket, error)
}

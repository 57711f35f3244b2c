package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"github.com/sangkips/hotelpos-api/pkg/lock"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

var (
	orderNumbers = repository.NumberSource{Table: "table_orders", Column: "order_no"}
	kotNumbers   = repository.NumberSource{Table: "kitchen_order_tickets", Column: "kot_no"}
)

// RestaurantService runs the restaurant floor: menu, tables, orders,
// kitchen tickets and bills
type RestaurantService struct {
	tx          repository.Transactor
	menuRepo    repository.MenuRepository
	tableRepo   repository.DiningTableRepository
	orderRepo   repository.TableOrderRepository
	kotRepo     repository.KOTRepository
	invoiceRepo repository.InvoiceRepository
	bookingRepo repository.BookingRepository
	tokenRepo   repository.TokenRepository
	counterRepo repository.CounterRepository
	settings    settingsLoader
	locker      lock.Locker
	logger      *logrus.Logger
	now         func() time.Time
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(
	tx repository.Transactor,
	menuRepo repository.MenuRepository,
	tableRepo repository.DiningTableRepository,
	orderRepo repository.TableOrderRepository,
	kotRepo repository.KOTRepository,
	invoiceRepo repository.InvoiceRepository,
	bookingRepo repository.BookingRepository,
	tokenRepo repository.TokenRepository,
	counterRepo repository.CounterRepository,
	hotelRepo repository.HotelRepository,
	locker lock.Locker,
	billingCfg config.BillingConfig,
	logger *logrus.Logger,
) *RestaurantService {
	return &RestaurantService{
		tx:          tx,
		menuRepo:    menuRepo,
		tableRepo:   tableRepo,
		orderRepo:   orderRepo,
		kotRepo:     kotRepo,
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		tokenRepo:   tokenRepo,
		counterRepo: counterRepo,
		settings:    settingsLoader{hotels: hotelRepo, defaults: DefaultHotelSettings(billingCfg)},
		locker:      locker,
		logger:      logger,
		now:         time.Now,
	}
}

// MenuItemInput represents the fields of a menu item
type MenuItemInput struct {
	Name      string
	Category  *string
	HSN       string
	Rate      float64
	GST       float64
	Veg       bool
	Available *bool
}

func (in *MenuItemInput) apply(m *entity.MenuItem) error {
	li := billing.LineItem{Item: strings.TrimSpace(in.Name), Rate: in.Rate, Qty: 1, GST: in.GST}
	if err := billing.ValidateItems([]billing.LineItem{li}); err != nil {
		if ve, ok := err.(*billing.ValidationError); ok {
			field := strings.TrimPrefix(ve.Field, "items[0].")
			if field == "item" {
				field = "name"
			}
			return apperror.NewValidationError(field, ve.Message)
		}
		return err
	}
	m.Name = li.Item
	m.Category = in.Category
	m.HSN = in.HSN
	m.Rate = billing.Round2(in.Rate)
	m.GST = in.GST
	m.Veg = in.Veg
	if in.Available != nil {
		m.Available = *in.Available
	}
	return nil
}

// CreateMenuItem adds a dish to the menu
func (s *RestaurantService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	item := &entity.MenuItem{Available: true}
	if err := input.apply(item); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, repoError(err, "Menu item")
	}
	return item, nil
}

// GetMenuItem retrieves a menu item
func (s *RestaurantService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenu lists menu items
func (s *RestaurantService) ListMenu(ctx context.Context, filter repository.MenuFilter, params pagination.Params) ([]entity.MenuItem, int64, error) {
	return s.menuRepo.List(ctx, filter, params)
}

// UpdateMenuItem updates a menu item. Lines already ordered keep their price.
func (s *RestaurantService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(item); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item
func (s *RestaurantService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, id)
}

// TableInput represents the fields of a dining table
type TableInput struct {
	TableNo string
	Seats   int
	Section *string
}

// CreateTable adds a dining table
func (s *RestaurantService) CreateTable(ctx context.Context, input *TableInput) (*entity.DiningTable, error) {
	tableNo := strings.TrimSpace(input.TableNo)
	if tableNo == "" {
		return nil, apperror.NewValidationError("table_no", "Table number is required")
	}
	table := &entity.DiningTable{TableNo: tableNo, Seats: input.Seats, Section: input.Section}
	if table.Seats <= 0 {
		table.Seats = 4
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, repoError(err, "Table")
	}
	return table, nil
}

// GetTable retrieves a dining table
func (s *RestaurantService) GetTable(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// ListTables lists dining tables
func (s *RestaurantService) ListTables(ctx context.Context) ([]entity.DiningTable, error) {
	return s.tableRepo.List(ctx)
}

// UpdateTable updates a dining table
func (s *RestaurantService) UpdateTable(ctx context.Context, id uuid.UUID, input *TableInput) (*entity.DiningTable, error) {
	table, err := s.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if tableNo := strings.TrimSpace(input.TableNo); tableNo != "" {
		table.TableNo = tableNo
	}
	if input.Seats > 0 {
		table.Seats = input.Seats
	}
	if input.Section != nil {
		table.Section = input.Section
	}
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, repoError(err, "Table")
	}
	return table, nil
}

// DeleteTable removes a table that has no open order
func (s *RestaurantService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.GetTable(ctx, id)
	if err != nil {
		return err
	}
	if table.Occupied {
		return apperror.NewConflictError("Table has an open order")
	}
	return s.tableRepo.Delete(ctx, id)
}

// OpenOrderInput represents the open order input
type OpenOrderInput struct {
	TableID    uuid.UUID
	GuestName  string
	GuestPhone string
	Covers     int
	// BookingID links the order to an in-house booking it may be charged to.
	BookingID *uuid.UUID
}

// OpenOrder seats a party at a table. A table holds at most one open order.
func (s *RestaurantService) OpenOrder(ctx context.Context, input *OpenOrderInput) (*entity.TableOrder, error) {
	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}

	var order *entity.TableOrder
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		table, err := s.tableRepo.GetByIDForUpdate(ctx, input.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperror.NewNotFoundError("Table")
		}
		open, err := s.orderRepo.GetOpenByTable(ctx, table.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return apperror.NewConflictError(fmt.Sprintf("Table %s already has an open order", table.TableNo))
		}
		if input.BookingID != nil {
			if err := s.checkChargeable(ctx, *input.BookingID); err != nil {
				return err
			}
		}

		number, err := s.counterRepo.Next(ctx, settings.OrderPrefix, orderNumbers)
		if err != nil {
			return err
		}
		order = &entity.TableOrder{
			OrderNo:    number,
			TableID:    table.ID,
			TableNo:    table.TableNo,
			GuestName:  strings.TrimSpace(input.GuestName),
			GuestPhone: strings.TrimSpace(input.GuestPhone),
			Covers:     input.Covers,
			Status:     enum.TableOrderStatusOpen,
			BookingID:  input.BookingID,
		}
		if order.Covers <= 0 {
			order.Covers = 1
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		table.Occupied = true
		return s.tableRepo.Update(ctx, table)
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}
	return order, nil
}

// checkChargeable verifies a booking can take restaurant charges.
func (s *RestaurantService) checkChargeable(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.NewValidationError("booking_id", "Booking not found")
	}
	if booking.IsClosed() {
		return apperror.NewConflictError("Booking is closed and cannot take charges")
	}
	return nil
}

// GetOrder retrieves an order with its lines
func (s *RestaurantService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists table orders
func (s *RestaurantService) ListOrders(ctx context.Context, filter repository.TableOrderFilter, params pagination.Params) ([]entity.TableOrder, int64, error) {
	return s.orderRepo.List(ctx, filter, params)
}

// OrderItemInput is one dish added to an order. With a MenuItemID the menu
// supplies name, HSN, rate and GST unless overridden.
type OrderItemInput struct {
	MenuItemID *uuid.UUID
	Item       string
	HSN        string
	Rate       *float64
	Qty        *float64
	GST        *float64
	Note       *string
}

// withOpenOrder runs fn on a locked open order inside a transaction.
func (s *RestaurantService) withOpenOrder(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, o *entity.TableOrder) error) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status != enum.TableOrderStatusOpen {
			return apperror.NewConflictError(fmt.Sprintf("Order is %s", order.Status))
		}
		return fn(ctx, order)
	})
}

// AddItems prices new dishes onto an open order and sends exactly those
// dishes to the kitchen on one ticket.
func (s *RestaurantService) AddItems(ctx context.Context, orderID uuid.UUID, items []OrderItemInput) (*entity.KitchenOrderTicket, error) {
	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewValidationError("items", "At least one item is required")
	}

	var kot *entity.KitchenOrderTicket
	err = s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
		lines := make([]entity.TableOrderLine, 0, len(items))
		priced := make([]billing.LineItem, 0, len(items))
		for i, in := range items {
			line, err := s.priceLine(ctx, in, i)
			if err != nil {
				return err
			}
			lines = append(lines, line)
			priced = append(priced, line.LineItem())
		}
		if err := billing.ValidateItems(priced); err != nil {
			return validationFailure(err)
		}

		number, err := s.counterRepo.Next(ctx, settings.KOTPrefix, kotNumbers)
		if err != nil {
			return err
		}
		kot = &entity.KitchenOrderTicket{
			KOTNo:   number,
			OrderID: order.ID,
			TableNo: order.TableNo,
			Status:  enum.KOTStatusPending,
		}
		tickets := make([]entity.KOTItem, 0, len(lines))
		for _, l := range lines {
			ti := entity.KOTItem{Item: l.Item, Qty: l.Qty}
			if l.Note != nil {
				ti.Note = *l.Note
			}
			tickets = append(tickets, ti)
		}
		if err := kot.SetItems(tickets); err != nil {
			return err
		}
		if err := s.kotRepo.Create(ctx, kot); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			lines[i].KOTID = &kot.ID
		}
		return s.orderRepo.AddLines(ctx, lines)
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}
	return kot, nil
}

func (s *RestaurantService) priceLine(ctx context.Context, in OrderItemInput, i int) (entity.TableOrderLine, error) {
	line := entity.TableOrderLine{
		Item: strings.TrimSpace(in.Item),
		HSN:  in.HSN,
		Qty:  billing.DefaultQty(in.Qty),
		Note: in.Note,
	}
	if in.MenuItemID != nil {
		menu, err := s.menuRepo.GetByID(ctx, *in.MenuItemID)
		if err != nil {
			return line, err
		}
		if menu == nil {
			return line, apperror.NewValidationError(fmt.Sprintf("items[%d].menu_item_id", i), "Menu item not found")
		}
		if !menu.Available {
			return line, apperror.NewValidationError(fmt.Sprintf("items[%d].menu_item_id", i), menu.Name+" is not available")
		}
		id := menu.ID
		line.MenuItemID = &id
		if line.Item == "" {
			line.Item = menu.Name
		}
		if line.HSN == "" {
			line.HSN = menu.HSN
		}
		line.Rate, line.GST = menu.Rate, menu.GST
	}
	if in.Rate != nil {
		line.Rate = *in.Rate
	}
	if in.GST != nil {
		line.GST = *in.GST
	}
	line.Rate = billing.Round2(line.Rate)
	line.Amount = billing.ComputeAmount(line.Rate, line.Qty, line.GST)
	return line, nil
}

// UpdateLineInput edits an order line. Edited names the field the user
// changed last: "amount" derives the rate, anything else derives the amount.
type UpdateLineInput struct {
	Rate   *float64
	Qty    *float64
	GST    *float64
	Amount *float64
	Note   *string
	Edited string
}

// UpdateLine edits a line on an open order
func (s *RestaurantService) UpdateLine(ctx context.Context, orderID, lineID uuid.UUID, input *UpdateLineInput) (*entity.TableOrderLine, error) {
	var line *entity.TableOrderLine
	err := s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
		l, err := s.orderRepo.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if l == nil || l.OrderID != order.ID {
			return apperror.NewNotFoundError("Order line")
		}

		li := l.LineItem()
		if input.Rate != nil {
			li.Rate = *input.Rate
		}
		if input.Qty != nil {
			li.Qty = *input.Qty
		}
		if input.GST != nil {
			li.GST = *input.GST
		}
		if input.Amount != nil {
			li.Amount = *input.Amount
		}
		if err := billing.ValidateItems([]billing.LineItem{li}); err != nil {
			return validationFailure(err)
		}
		edited := billing.ParseField(input.Edited)
		if input.Edited == "" && input.Amount != nil && input.Rate == nil {
			edited = billing.FieldAmount
		}
		li = li.Recalculate(edited)

		l.Rate, l.Qty, l.GST, l.Amount = li.Rate, li.Qty, li.GST, li.Amount
		if input.Note != nil {
			l.Note = input.Note
		}
		line = l
		return s.orderRepo.UpdateLine(ctx, l)
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}
	return line, nil
}

// RemoveLine deletes a line from an open order
func (s *RestaurantService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	err := s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
		l, err := s.orderRepo.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if l == nil || l.OrderID != order.ID {
			return apperror.NewNotFoundError("Order line")
		}
		return s.orderRepo.DeleteLine(ctx, lineID)
	})
	return repoError(err, "Order")
}

// CancelOrder cancels an open order and frees its table
func (s *RestaurantService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.TableOrder, error) {
	var result *entity.TableOrder
	err := s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
		order.Status = enum.TableOrderStatusCancelled
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		result = order
		return s.freeTable(ctx, order.TableID)
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}
	return result, nil
}

func (s *RestaurantService) freeTable(ctx context.Context, tableID uuid.UUID) error {
	table, err := s.tableRepo.GetByIDForUpdate(ctx, tableID)
	if err != nil {
		return err
	}
	if table == nil {
		// Deleted while the order was open; nothing to free.
		return nil
	}
	table.Occupied = false
	return s.tableRepo.Update(ctx, table)
}

// BillInput settles a table order, either as a restaurant invoice paid at
// the table or as food charges on the guest's booking.
type BillInput struct {
	Payments        []PaymentInput
	CustomerName    *string
	CustomerPhone   *string
	CustomerGSTIN   *string
	ChargeToBooking bool
	BookingID       *uuid.UUID
}

// BillResult is what billing an order produced
type BillResult struct {
	Order   *entity.TableOrder `json:"order"`
	Invoice *InvoiceDetail     `json:"invoice,omitempty"`
	Tokens  []entity.Token     `json:"tokens,omitempty"`
}

// Bill closes an open order and frees its table.
func (s *RestaurantService) Bill(ctx context.Context, orderID uuid.UUID, input *BillInput) (*BillResult, error) {
	if input.ChargeToBooking {
		return s.chargeToBooking(ctx, orderID, input)
	}

	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &BillResult{}
	err = s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
		items := order.LineItems()
		if err := billing.ValidateItems(items); err != nil {
			return validationFailure(err)
		}
		totals := billing.Aggregate(items)
		if err := billing.ValidatePayments(totals.Payable, paymentEntries(nil, input.Payments...)); err != nil {
			return validationFailure(err)
		}

		invoice := &entity.Invoice{
			Kind:          enum.InvoiceKindRestaurant,
			TableOrderID:  &order.ID,
			CustomerName:  order.GuestName,
			CustomerPhone: order.GuestPhone,
		}
		if input.CustomerName != nil {
			invoice.CustomerName = strings.TrimSpace(*input.CustomerName)
		}
		if input.CustomerPhone != nil {
			invoice.CustomerPhone = strings.TrimSpace(*input.CustomerPhone)
		}
		if input.CustomerGSTIN != nil {
			invoice.CustomerGSTIN = strPtr(strings.TrimSpace(*input.CustomerGSTIN))
		}
		for _, l := range order.Lines {
			invoice.Lines = append(invoice.Lines, entity.InvoiceLine{
				Kind:   enum.TokenKindFood.String(),
				Item:   l.Item,
				HSN:    l.HSN,
				Rate:   l.Rate,
				Qty:    l.Qty,
				GST:    l.GST,
				Amount: l.Amount,
			})
		}
		now := s.now()
		for _, p := range input.Payments {
			invoice.Payments = append(invoice.Payments, p.toPayment(now))
		}
		stamp(invoice, now, settings.Location())
		invoice.ApplyTotals(totals)
		invoice.Settle()

		number, err := s.counterRepo.Next(ctx, settings.RestaurantInvoicePrefix, invoiceNumbers)
		if err != nil {
			return err
		}
		invoice.InvoiceNo = number
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		order.Status = enum.TableOrderStatusBilled
		order.InvoiceID = &invoice.ID
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		result.Order = order
		result.Invoice = invoiceDetail(invoice)
		return s.freeTable(ctx, order.TableID)
	})
	if err != nil {
		err = repoError(err, "Order")
		if !apperror.IsAppError(err) {
			config.LogError(s.logger, "restaurant", "Bill", "bill table order", orderID, err)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_no":   result.Order.OrderNo,
		"invoice_no": result.Invoice.Invoice.InvoiceNo,
		"payable":    result.Invoice.Invoice.PayableAmount,
	}).Info("Table order billed")
	return result, nil
}

// chargeToBooking moves an order's lines onto a booking as food charges,
// to be billed with the stay.
func (s *RestaurantService) chargeToBooking(ctx context.Context, orderID uuid.UUID, input *BillInput) (*BillResult, error) {
	if len(input.Payments) > 0 {
		return nil, apperror.NewValidationError("payments", "Payments are taken on the booking when charging to a room")
	}
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	bookingID := order.BookingID
	if input.BookingID != nil {
		bookingID = input.BookingID
	}
	if bookingID == nil {
		return nil, apperror.NewValidationError("booking_id", "A booking is required to charge to a room")
	}

	result := &BillResult{}
	err = s.locker.WithLock(ctx, bookingLockKey(*bookingID), func(ctx context.Context) error {
		return s.withOpenOrder(ctx, orderID, func(ctx context.Context, order *entity.TableOrder) error {
			booking, err := s.bookingRepo.GetByIDForUpdate(ctx, *bookingID)
			if err != nil {
				return err
			}
			if booking == nil {
				return apperror.NewValidationError("booking_id", "Booking not found")
			}
			if booking.IsClosed() {
				return apperror.NewConflictError("Booking is closed and cannot take charges")
			}
			if err := billing.ValidateItems(order.LineItems()); err != nil {
				return validationFailure(err)
			}

			for _, l := range order.Lines {
				token := entity.Token{
					BookingID: booking.ID,
					Kind:      enum.TokenKindFood,
					Item:      fmt.Sprintf("%s (%s)", l.Item, order.OrderNo),
					HSN:       l.HSN,
					Rate:      l.Rate,
					Qty:       l.Qty,
					GST:       l.GST,
					Amount:    l.Amount,
				}
				if err := s.tokenRepo.Create(ctx, &token); err != nil {
					return err
				}
				result.Tokens = append(result.Tokens, token)
			}

			order.Status = enum.TableOrderStatusBilled
			order.BookingID = &booking.ID
			if err := s.orderRepo.Update(ctx, order); err != nil {
				return err
			}
			result.Order = order
			return s.freeTable(ctx, order.TableID)
		})
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}
	return result, nil
}

// ListKOTs lists kitchen tickets, optionally by status or order
func (s *RestaurantService) ListKOTs(ctx context.Context, status *enum.KOTStatus, orderID *uuid.UUID) ([]entity.KitchenOrderTicket, error) {
	return s.kotRepo.List(ctx, status, orderID)
}

// UpdateKOTStatus moves a kitchen ticket forward
func (s *RestaurantService) UpdateKOTStatus(ctx context.Context, id uuid.UUID, status enum.KOTStatus) (*entity.KitchenOrderTicket, error) {
	kot, err := s.kotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kot == nil {
		return nil, apperror.NewNotFoundError("Kitchen order ticket")
	}
	if !kot.Status.CanAdvanceTo(status) {
		return nil, apperror.NewConflictError(fmt.Sprintf("Ticket cannot move from %s to %s", kot.Status, status))
	}
	kot.Status = status
	if err := s.kotRepo.Update(ctx, kot); err != nil {
		return nil, err
	}
	return kot, nil
}

package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"github.com/sangkips/hotelpos-api/pkg/sequence"
	"github.com/sirupsen/logrus"
)

// memStore backs every fake repository. Reads hand out copies so services
// cannot mutate stored rows without going through a repository call.
type memStore struct {
	mu         sync.Mutex
	seq        int
	hotels     map[uuid.UUID]entity.Hotel
	guests     map[uuid.UUID]entity.Guest
	categories map[uuid.UUID]entity.RoomCategory
	rooms      map[uuid.UUID]entity.Room
	bookings   map[uuid.UUID]entity.Booking
	tokens     map[uuid.UUID]entity.Token
	payments   []entity.Payment
	invoices   map[uuid.UUID]entity.Invoice
	counters   map[string]int64
	menu       map[uuid.UUID]entity.MenuItem
	tables     map[uuid.UUID]entity.DiningTable
	orders     map[uuid.UUID]entity.TableOrder
	lines      map[uuid.UUID]entity.TableOrderLine
	kots       map[uuid.UUID]entity.KitchenOrderTicket
}

func newMemStore() *memStore {
	return &memStore{
		hotels:     map[uuid.UUID]entity.Hotel{},
		guests:     map[uuid.UUID]entity.Guest{},
		categories: map[uuid.UUID]entity.RoomCategory{},
		rooms:      map[uuid.UUID]entity.Room{},
		bookings:   map[uuid.UUID]entity.Booking{},
		tokens:     map[uuid.UUID]entity.Token{},
		invoices:   map[uuid.UUID]entity.Invoice{},
		counters:   map[string]int64{},
		menu:       map[uuid.UUID]entity.MenuItem{},
		tables:     map[uuid.UUID]entity.DiningTable{},
		orders:     map[uuid.UUID]entity.TableOrder{},
		lines:      map[uuid.UUID]entity.TableOrderLine{},
		kots:       map[uuid.UUID]entity.KitchenOrderTicket{},
	}
}

// stampTime gives every created row a distinct, increasing CreatedAt.
func (s *memStore) stampTime() time.Time {
	s.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// hotels

type fakeHotelRepo struct{ s *memStore }

func (r fakeHotelRepo) Create(ctx context.Context, h *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.s.hotels[h.ID] = *h
	return nil
}

func (r fakeHotelRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r fakeHotelRepo) GetBySlug(ctx context.Context, slug string) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.hotels {
		if h.Slug == slug {
			return &h, nil
		}
	}
	return nil, nil
}

func (r fakeHotelRepo) Update(ctx context.Context, h *entity.Hotel) error {
	return r.Create(ctx, h)
}

func (r fakeHotelRepo) List(ctx context.Context, params pagination.Params) ([]entity.Hotel, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Hotel
	for _, h := range r.s.hotels {
		out = append(out, h)
	}
	return out, int64(len(out)), nil
}

func (r fakeHotelRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	h, _ := r.GetBySlug(ctx, slug)
	return h != nil, nil
}

// guests

type fakeGuestRepo struct{ s *memStore }

func (r fakeGuestRepo) Create(ctx context.Context, g *entity.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.s.guests[g.ID] = *g
	return nil
}

func (r fakeGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.guests[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r fakeGuestRepo) GetByPhone(ctx context.Context, phone string) (*entity.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.guests {
		if g.Phone == phone {
			return &g, nil
		}
	}
	return nil, nil
}

func (r fakeGuestRepo) Update(ctx context.Context, g *entity.Guest) error {
	return r.Create(ctx, g)
}

func (r fakeGuestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.guests, id)
	return nil
}

func (r fakeGuestRepo) List(ctx context.Context, params pagination.Params, search string) ([]entity.Guest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Guest
	for _, g := range r.s.guests {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

// rooms

type fakeRoomRepo struct{ s *memStore }

func (r fakeRoomRepo) CreateCategory(ctx context.Context, c *entity.RoomCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r fakeRoomRepo) GetCategory(ctx context.Context, id uuid.UUID) (*entity.RoomCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r fakeRoomRepo) UpdateCategory(ctx context.Context, c *entity.RoomCategory) error {
	return r.CreateCategory(ctx, c)
}

func (r fakeRoomRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

func (r fakeRoomRepo) ListCategories(ctx context.Context) ([]entity.RoomCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.RoomCategory
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r fakeRoomRepo) CountRoomsInCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, room := range r.s.rooms {
		if room.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	stored := *room
	stored.Category = nil
	r.s.rooms[room.ID] = stored
	return nil
}

func (r fakeRoomRepo) withCategory(room entity.Room) *entity.Room {
	if c, ok := r.s.categories[room.CategoryID]; ok {
		room.Category = &c
	}
	return &room
}

func (r fakeRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(room), nil
}

func (r fakeRoomRepo) GetByRoomNo(ctx context.Context, roomNo string) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.RoomNo == roomNo {
			return r.withCategory(room), nil
		}
	}
	return nil, nil
}

func (r fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	return r.Create(ctx, room)
}

func (r fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rooms, id)
	return nil
}

func (r fakeRoomRepo) List(ctx context.Context, activeOnly bool) ([]entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Room
	for _, room := range r.s.rooms {
		if activeOnly && !room.Active {
			continue
		}
		out = append(out, *r.withCategory(room))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNo < out[j].RoomNo })
	return out, nil
}

// bookings, tokens and payments

type fakeBookingRepo struct{ s *memStore }

func (r fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.Version = 1
	for i := range b.Tokens {
		t := &b.Tokens[i]
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.BookingID = b.ID
		t.CreatedAt = r.s.stampTime()
		r.s.tokens[t.ID] = *t
	}
	for i := range b.Payments {
		p := &b.Payments[i]
		p.ID = uuid.New()
		p.BookingID = &b.ID
		r.s.payments = append(r.s.payments, *p)
	}
	header := *b
	header.Tokens, header.Payments = nil, nil
	r.s.bookings[b.ID] = header
	return nil
}

func (r fakeBookingRepo) assemble(b entity.Booking) *entity.Booking {
	for _, t := range r.s.tokens {
		if t.BookingID == b.ID {
			b.Tokens = append(b.Tokens, t)
		}
	}
	sort.Slice(b.Tokens, func(i, j int) bool { return b.Tokens[i].CreatedAt.Before(b.Tokens[j].CreatedAt) })
	for _, p := range r.s.payments {
		if p.BookingID != nil && *p.BookingID == b.ID {
			b.Payments = append(b.Payments, p)
		}
	}
	return &b
}

func (r fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.assemble(b), nil
}

func (r fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r fakeBookingRepo) List(ctx context.Context, filter repository.BookingFilter, params pagination.Params) ([]entity.Booking, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Booking
	for _, b := range r.s.bookings {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r fakeBookingRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Booking
	for _, b := range r.s.bookings {
		if b.CheckInDate.After(to) || b.CheckOutDate.Before(from) {
			continue
		}
		out = append(out, *r.assemble(b))
	}
	return out, nil
}

func (r fakeBookingRepo) UpdateHeader(ctx context.Context, b *entity.Booking, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.bookings[b.ID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrStaleVersion
	}
	header := *b
	header.Tokens, header.Payments = nil, nil
	header.Version = expectedVersion + 1
	r.s.bookings[b.ID] = header
	b.Version = header.Version
	return nil
}

type fakeTokenRepo struct{ s *memStore }

func (r fakeTokenRepo) Create(ctx context.Context, t *entity.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = r.s.stampTime()
	r.s.tokens[t.ID] = *t
	return nil
}

func (r fakeTokenRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r fakeTokenRepo) Update(ctx context.Context, t *entity.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.tokens[t.ID]
	if !ok || stored.Invoice {
		return repository.ErrAlreadyBilled
	}
	updated := *t
	updated.Invoice, updated.InvoiceID = false, nil
	r.s.tokens[t.ID] = updated
	return nil
}

func (r fakeTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Invoice {
		return repository.ErrAlreadyBilled
	}
	delete(r.s.tokens, id)
	return nil
}

func (r fakeTokenRepo) unbilled(bookingID uuid.UUID) []entity.Token {
	var out []entity.Token
	for _, t := range r.s.tokens {
		if t.BookingID == bookingID && !t.Invoice {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r fakeTokenRepo) ListUnbilled(ctx context.Context, bookingID uuid.UUID) ([]entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.unbilled(bookingID), nil
}

func (r fakeTokenRepo) LockUnbilled(ctx context.Context, bookingID uuid.UUID, ids []uuid.UUID) ([]entity.Token, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(ids) == 0 {
		return r.unbilled(bookingID), nil
	}
	out := make([]entity.Token, 0, len(ids))
	for _, id := range ids {
		t, ok := r.s.tokens[id]
		if !ok || t.BookingID != bookingID {
			return nil, repository.ErrNotFound
		}
		if t.Invoice {
			return nil, repository.ErrAlreadyBilled
		}
		out = append(out, t)
	}
	return out, nil
}

func (r fakeTokenRepo) MarkInvoiced(ctx context.Context, ids []uuid.UUID, invoiceID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if r.s.tokens[id].Invoice {
			return repository.ErrAlreadyBilled
		}
	}
	for _, id := range ids {
		t := r.s.tokens[id]
		t.Invoice = true
		inv := invoiceID
		t.InvoiceID = &inv
		r.s.tokens[id] = t
	}
	return nil
}

type fakePaymentRepo struct{ s *memStore }

func (r fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r fakePaymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.s.payments {
		if p.BookingID != nil && *p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID != nil && *p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

// invoices and counters

type fakeInvoiceRepo struct{ s *memStore }

func (r fakeInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	for _, other := range r.s.invoices {
		if other.InvoiceNo == inv.InvoiceNo {
			return repository.ErrDuplicate
		}
	}
	for i := range inv.Lines {
		inv.Lines[i].ID = uuid.New()
		inv.Lines[i].InvoiceID = inv.ID
	}
	for i := range inv.Payments {
		inv.Payments[i].ID = uuid.New()
		id := inv.ID
		inv.Payments[i].InvoiceID = &id
		r.s.payments = append(r.s.payments, inv.Payments[i])
	}
	stored := *inv
	stored.Payments = nil
	r.s.invoices[inv.ID] = stored
	return nil
}

func (r fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	for _, p := range r.s.payments {
		if p.InvoiceID != nil && *p.InvoiceID == id {
			inv.Payments = append(inv.Payments, p)
		}
	}
	return &inv, nil
}

func (r fakeInvoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r fakeInvoiceRepo) UpdateSettlement(ctx context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.invoices[inv.ID]
	stored.Paid, stored.Due = inv.Paid, inv.Due
	r.s.invoices[inv.ID] = stored
	return nil
}

func (r fakeInvoiceRepo) all() []entity.Invoice {
	var out []entity.Invoice
	for _, inv := range r.s.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo < out[j].InvoiceNo })
	return out
}

func (r fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter, params pagination.Params) ([]entity.Invoice, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.all()
	return out, int64(len(out)), nil
}

func (r fakeInvoiceRepo) ListAll(ctx context.Context, filter repository.InvoiceFilter) ([]entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(), nil
}

func (r fakeInvoiceRepo) OutstandingDue(ctx context.Context) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total float64
	for _, inv := range r.s.invoices {
		total += inv.Due
	}
	return total, nil
}

type fakeCounterRepo struct{ s *memStore }

func (r fakeCounterRepo) Next(ctx context.Context, prefix string, source repository.NumberSource) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counters[prefix]++
	return sequence.Format(prefix, r.s.counters[prefix]), nil
}

// restaurant

type fakeMenuRepo struct{ s *memStore }

func (r fakeMenuRepo) Create(ctx context.Context, m *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.s.menu[m.ID] = *m
	return nil
}

func (r fakeMenuRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.menu[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r fakeMenuRepo) Update(ctx context.Context, m *entity.MenuItem) error {
	return r.Create(ctx, m)
}

func (r fakeMenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.menu, id)
	return nil
}

func (r fakeMenuRepo) List(ctx context.Context, filter repository.MenuFilter, params pagination.Params) ([]entity.MenuItem, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.MenuItem
	for _, m := range r.s.menu {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

type fakeTableRepo struct{ s *memStore }

func (r fakeTableRepo) Create(ctx context.Context, t *entity.DiningTable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.s.tables[t.ID] = *t
	return nil
}

func (r fakeTableRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r fakeTableRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.DiningTable, error) {
	return r.GetByID(ctx, id)
}

func (r fakeTableRepo) Update(ctx context.Context, t *entity.DiningTable) error {
	return r.Create(ctx, t)
}

func (r fakeTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tables, id)
	return nil
}

func (r fakeTableRepo) List(ctx context.Context) ([]entity.DiningTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.DiningTable
	for _, t := range r.s.tables {
		out = append(out, t)
	}
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r fakeOrderRepo) Create(ctx context.Context, o *entity.TableOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	stored.Lines = nil
	r.s.orders[o.ID] = stored
	return nil
}

func (r fakeOrderRepo) assemble(o entity.TableOrder) *entity.TableOrder {
	for _, l := range r.s.lines {
		if l.OrderID == o.ID {
			o.Lines = append(o.Lines, l)
		}
	}
	sort.Slice(o.Lines, func(i, j int) bool { return o.Lines[i].CreatedAt.Before(o.Lines[j].CreatedAt) })
	return &o
}

func (r fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return r.assemble(o), nil
}

func (r fakeOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TableOrder, error) {
	return r.GetByID(ctx, id)
}

func (r fakeOrderRepo) GetOpenByTable(ctx context.Context, tableID uuid.UUID) (*entity.TableOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.TableID == tableID && o.Status == enum.TableOrderStatusOpen {
			return r.assemble(o), nil
		}
	}
	return nil, nil
}

func (r fakeOrderRepo) Update(ctx context.Context, o *entity.TableOrder) error {
	return r.Create(ctx, o)
}

func (r fakeOrderRepo) List(ctx context.Context, filter repository.TableOrderFilter, params pagination.Params) ([]entity.TableOrder, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.TableOrder
	for _, o := range r.s.orders {
		out = append(out, *r.assemble(o))
	}
	return out, int64(len(out)), nil
}

func (r fakeOrderRepo) CountOpen(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if o.Status == enum.TableOrderStatusOpen {
			n++
		}
	}
	return n, nil
}

func (r fakeOrderRepo) AddLines(ctx context.Context, lines []entity.TableOrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].CreatedAt = r.s.stampTime()
		r.s.lines[lines[i].ID] = lines[i]
	}
	return nil
}

func (r fakeOrderRepo) GetLine(ctx context.Context, id uuid.UUID) (*entity.TableOrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r fakeOrderRepo) UpdateLine(ctx context.Context, l *entity.TableOrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lines[l.ID] = *l
	return nil
}

func (r fakeOrderRepo) DeleteLine(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, id)
	return nil
}

type fakeKOTRepo struct{ s *memStore }

func (r fakeKOTRepo) Create(ctx context.Context, k *entity.KitchenOrderTicket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	r.s.kots[k.ID] = *k
	return nil
}

func (r fakeKOTRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.KitchenOrderTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k, ok := r.s.kots[id]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r fakeKOTRepo) Update(ctx context.Context, k *entity.KitchenOrderTicket) error {
	return r.Create(ctx, k)
}

func (r fakeKOTRepo) List(ctx context.Context, status *enum.KOTStatus, orderID *uuid.UUID) ([]entity.KitchenOrderTicket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.KitchenOrderTicket
	for _, k := range r.s.kots {
		if status != nil && k.Status != *status {
			continue
		}
		if orderID != nil && k.OrderID != *orderID {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

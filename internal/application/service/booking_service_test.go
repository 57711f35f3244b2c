package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/lock"
)

var testBilling = config.BillingConfig{
	InvoicePrefix:           "INV",
	BookingPrefix:           "BK",
	RestaurantInvoicePrefix: "RINV",
	KOTPrefix:               "KOT",
	OrderPrefix:             "ORD",
	DefaultGST:              12,
	Currency:                "INR",
	MaxStayNights:           365,
}

type harness struct {
	ctx        context.Context
	store      *memStore
	bookings   *BookingService
	invoices   *InvoiceService
	restaurant *RestaurantService
	room101    uuid.UUID
	room102    uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := newMemStore()
	hotelID := uuid.New()
	store.hotels[hotelID] = entity.Hotel{ID: hotelID, Name: "Lakeview", Slug: "lakeview"}
	ctx := repository.WithHotel(context.Background(), hotelID)

	category := entity.RoomCategory{ID: uuid.New(), HotelID: hotelID, Name: "Deluxe", Rate: 1000, GST: 12, HSN: "996311"}
	store.categories[category.ID] = category
	h := &harness{ctx: ctx, store: store, room101: uuid.New(), room102: uuid.New()}
	store.rooms[h.room101] = entity.Room{ID: h.room101, HotelID: hotelID, RoomNo: "101", CategoryID: category.ID, Active: true}
	store.rooms[h.room102] = entity.Room{ID: h.room102, HotelID: hotelID, RoomNo: "102", CategoryID: category.ID, Active: true}

	clock := func() time.Time { return time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC) }
	locker := lock.NewLocalLocker()
	tx := passthroughTx{}
	logger := quietLogger()

	h.bookings = NewBookingService(tx, fakeBookingRepo{store}, fakeTokenRepo{store}, fakePaymentRepo{store},
		fakeRoomRepo{store}, fakeGuestRepo{store}, fakeCounterRepo{store}, fakeHotelRepo{store}, locker, testBilling, logger)
	h.bookings.now = clock
	h.invoices = NewInvoiceService(tx, fakeInvoiceRepo{store}, fakeBookingRepo{store}, fakeTokenRepo{store},
		fakePaymentRepo{store}, fakeCounterRepo{store}, fakeHotelRepo{store}, locker, testBilling, logger)
	h.invoices.now = clock
	h.restaurant = NewRestaurantService(tx, fakeMenuRepo{store}, fakeTableRepo{store}, fakeOrderRepo{store},
		fakeKOTRepo{store}, fakeInvoiceRepo{store}, fakeBookingRepo{store}, fakeTokenRepo{store},
		fakeCounterRepo{store}, fakeHotelRepo{store}, locker, testBilling, logger)
	h.restaurant.now = clock
	return h
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// book reserves room for nights [in, out) of March 2024 and fails the test on error.
func (h *harness) book(t *testing.T, room uuid.UUID, in, out int) *BookingDetail {
	t.Helper()
	detail, err := h.bookings.CreateBooking(h.ctx, &CreateBookingInput{
		Guest:    GuestInput{Name: "Asha Rao", Phone: "9800000001"},
		CheckIn:  day(in),
		CheckOut: day(out),
		Rooms:    []BookingRoomInput{{RoomID: room}},
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	return detail
}

func wantStatus(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", code)
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != code {
		t.Fatalf("status = %d, want %d (%v)", appErr.Code, code, err)
	}
	return appErr
}

func TestCreateBooking(t *testing.T) {
	h := newHarness(t)

	detail := h.book(t, h.room101, 10, 12)
	b := detail.Booking
	if b.BookingNo != "BK-1" {
		t.Errorf("BookingNo = %q, want BK-1", b.BookingNo)
	}
	if b.GuestName != "Asha Rao" || b.GuestID == nil {
		t.Errorf("guest not attached: %+v", b)
	}
	if len(b.Tokens) != 1 {
		t.Fatalf("tokens = %d, want 1", len(b.Tokens))
	}
	room := b.Tokens[0]
	if room.Kind != enum.TokenKindRoom || room.Days != 2 || room.Amount != 2240 {
		t.Errorf("room token = %+v, want 2 days at 2240", room)
	}
	if detail.Summary.Nights != 2 || detail.Summary.Totals.Payable != 2240 || detail.Summary.Due != 2240 {
		t.Errorf("summary = %+v", detail.Summary)
	}

	// Same phone reuses the guest.
	h.book(t, h.room102, 10, 11)
	if len(h.store.guests) != 1 {
		t.Errorf("guests = %d, want 1", len(h.store.guests))
	}
}

func TestCreateBookingAvailability(t *testing.T) {
	tests := []struct {
		name     string
		room     func(h *harness) uuid.UUID
		in, out  int
		wantCode int
	}{
		{"overlapping stay", func(h *harness) uuid.UUID { return h.room101 }, 11, 13, http.StatusConflict},
		{"same dates", func(h *harness) uuid.UUID { return h.room101 }, 10, 12, http.StatusConflict},
		{"arrives on departure day", func(h *harness) uuid.UUID { return h.room101 }, 12, 14, 0},
		{"leaves on arrival day", func(h *harness) uuid.UUID { return h.room101 }, 8, 10, 0},
		{"other room", func(h *harness) uuid.UUID { return h.room102 }, 10, 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.book(t, h.room101, 10, 12)

			_, err := h.bookings.CreateBooking(h.ctx, &CreateBookingInput{
				Guest:    GuestInput{Name: "Ravi Menon", Phone: "9800000002"},
				CheckIn:  day(tt.in),
				CheckOut: day(tt.out),
				Rooms:    []BookingRoomInput{{RoomID: tt.room(h)}},
			})
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("CreateBooking() error = %v", err)
				}
				return
			}
			wantStatus(t, err, tt.wantCode)
		})
	}
}

func TestCreateBookingValidation(t *testing.T) {
	h := newHarness(t)
	rooms := []BookingRoomInput{{RoomID: h.room101}}

	tests := []struct {
		name  string
		input CreateBookingInput
		field string
	}{
		{"missing guest", CreateBookingInput{CheckIn: day(10), CheckOut: day(11), Rooms: rooms}, "guest.name"},
		{"no rooms", CreateBookingInput{Guest: GuestInput{Name: "A"}, CheckIn: day(10), CheckOut: day(11)}, "rooms"},
		{"checkout before checkin", CreateBookingInput{Guest: GuestInput{Name: "A"}, CheckIn: day(12), CheckOut: day(10), Rooms: rooms}, "checkout_date"},
		{"unknown room", CreateBookingInput{Guest: GuestInput{Name: "A"}, CheckIn: day(10), CheckOut: day(11), Rooms: []BookingRoomInput{{RoomID: uuid.New()}}}, "rooms[0].room_id"},
		{"cancelled status", CreateBookingInput{Guest: GuestInput{Name: "A"}, CheckIn: day(10), CheckOut: day(11), Rooms: rooms, Status: enum.BookingStatusCancelled}, "booking_status"},
		{"negative advance", CreateBookingInput{Guest: GuestInput{Name: "A"}, CheckIn: day(10), CheckOut: day(11), Rooms: rooms, Advance: &entity.AdvancePayment{Mode: "Cash", Amount: -1}}, "advance_payment.amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := h.bookings.CreateBooking(h.ctx, &input)
			appErr := wantStatus(t, err, http.StatusUnprocessableEntity)
			if len(appErr.Errors) == 0 || appErr.Errors[0].Field != tt.field {
				t.Errorf("errors = %+v, want field %q", appErr.Errors, tt.field)
			}
		})
	}
}

func TestCreateBlockedBookingWithoutGuest(t *testing.T) {
	h := newHarness(t)
	detail, err := h.bookings.CreateBooking(h.ctx, &CreateBookingInput{
		CheckIn:  day(10),
		CheckOut: day(10),
		Status:   enum.BookingStatusBlocked,
		Rooms:    []BookingRoomInput{{RoomID: h.room102}},
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if detail.Booking.GuestName != "Blocked" {
		t.Errorf("GuestName = %q", detail.Booking.GuestName)
	}
	// Same-day stays bill one night.
	if detail.Summary.Nights != 1 {
		t.Errorf("Nights = %d, want 1", detail.Summary.Nights)
	}
}

func TestBookingLifecycle(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	_, err := h.bookings.CheckOut(h.ctx, id, 0)
	wantStatus(t, err, http.StatusConflict)

	in, err := h.bookings.CheckIn(h.ctx, id, 1)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if !in.Booking.CheckedIn || in.Booking.CheckedInAt == nil || in.Booking.Version != 2 {
		t.Errorf("after check-in: %+v", in.Booking)
	}

	_, err = h.bookings.CheckIn(h.ctx, id, 0)
	wantStatus(t, err, http.StatusConflict)

	out, err := h.bookings.CheckOut(h.ctx, id, 2)
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if !out.Booking.CheckedOut {
		t.Error("booking should be checked out")
	}

	_, err = h.bookings.Cancel(h.ctx, id, 0)
	wantStatus(t, err, http.StatusConflict)

	_, err = h.bookings.AddToken(h.ctx, id, &TokenInput{Kind: enum.TokenKindService, Item: "Laundry", Rate: 100})
	wantStatus(t, err, http.StatusConflict)
}

func TestCancelReleasesRooms(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	detail, err := h.bookings.Cancel(h.ctx, id, 0)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if detail.Booking.BookingStatus != enum.BookingStatusCancelled {
		t.Errorf("status = %s", detail.Booking.BookingStatus)
	}
	h.book(t, h.room101, 10, 12)

	_, err = h.bookings.AddPayment(h.ctx, id, &PaymentInput{Mode: "Cash", Amount: 10})
	wantStatus(t, err, http.StatusConflict)
}

func TestUpdateDetailsVersion(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID
	remarks := "late arrival"

	detail, err := h.bookings.UpdateDetails(h.ctx, id, 1, &UpdateBookingInput{Remarks: &remarks})
	if err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	if detail.Booking.Version != 2 || detail.Booking.Remarks == nil || *detail.Booking.Remarks != remarks {
		t.Errorf("booking = %+v", detail.Booking)
	}

	_, err = h.bookings.UpdateDetails(h.ctx, id, 1, &UpdateBookingInput{Remarks: &remarks})
	wantStatus(t, err, http.StatusConflict)

	if _, err := h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{Remarks: &remarks}); err != nil {
		t.Fatalf("UpdateDetails() without version error = %v", err)
	}
}

func TestUpdateDetailsMovesStay(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID
	h.book(t, h.room101, 14, 16)

	checkout := day(13)
	detail, err := h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{CheckOut: &checkout})
	if err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	room := detail.Booking.Tokens[0]
	if room.Days != 3 || room.Amount != 3360 {
		t.Errorf("room token = %+v, want 3 days at 3360", room)
	}
	if detail.Summary.Totals.Payable != 3360 {
		t.Errorf("payable = %v", detail.Summary.Totals.Payable)
	}

	checkout = day(15)
	_, err = h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{CheckOut: &checkout})
	wantStatus(t, err, http.StatusConflict)
}

func TestUpdateDetailsStatus(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	cancelled := enum.BookingStatusCancelled
	_, err := h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{Status: &cancelled})
	wantStatus(t, err, http.StatusUnprocessableEntity)

	blocked := enum.BookingStatusBlocked
	if _, err := h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{Status: &blocked}); err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	if _, err := h.bookings.CheckIn(h.ctx, id, 0); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	confirmed := enum.BookingStatusConfirmed
	_, err = h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{Status: &confirmed})
	wantStatus(t, err, http.StatusConflict)
}

func TestAddPaymentNeverExceedsPayable(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	if _, err := h.bookings.AddPayment(h.ctx, id, &PaymentInput{Mode: "Cash", Amount: 2000}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	_, err := h.bookings.AddPayment(h.ctx, id, &PaymentInput{Mode: "Card", Amount: 240.01})
	appErr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if appErr.Errors[0].Field != "payments" {
		t.Errorf("field = %q, want payments", appErr.Errors[0].Field)
	}

	_, err = h.bookings.AddPayment(h.ctx, id, &PaymentInput{Amount: 10})
	appErr = wantStatus(t, err, http.StatusUnprocessableEntity)
	if appErr.Errors[0].Field != "payments[1].mode" {
		t.Errorf("field = %q, want payments[1].mode", appErr.Errors[0].Field)
	}

	detail, err := h.bookings.AddPayment(h.ctx, id, &PaymentInput{Mode: "UPI", Amount: 240})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	if detail.Summary.Paid != 2240 || detail.Summary.Due != 0 {
		t.Errorf("summary = %+v", detail.Summary)
	}
}

func TestRemoveTokenKeepsPaymentsCovered(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	laundry, err := h.bookings.AddToken(h.ctx, id, &TokenInput{Kind: enum.TokenKindService, Item: "Laundry", Rate: 500})
	if err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}
	if _, err := h.bookings.AddPayment(h.ctx, id, &PaymentInput{Mode: "Cash", Amount: 2740}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	err = h.bookings.RemoveToken(h.ctx, id, laundry.ID)
	wantStatus(t, err, http.StatusUnprocessableEntity)

	rate := 400.0
	_, err = h.bookings.UpdateToken(h.ctx, id, laundry.ID, &UpdateTokenInput{Rate: &rate})
	wantStatus(t, err, http.StatusUnprocessableEntity)
}

func TestAddTokenKinds(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID
	qty := 2.0

	token, err := h.bookings.AddToken(h.ctx, id, &TokenInput{Kind: enum.TokenKindFood, Item: "Breakfast", Rate: 150, Qty: &qty, GST: 5})
	if err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}
	if token.Amount != 315 {
		t.Errorf("amount = %v, want 315", token.Amount)
	}

	_, err = h.bookings.AddToken(h.ctx, id, &TokenInput{Kind: enum.TokenKindRoom, Item: "Extra bed", Rate: 500})
	wantStatus(t, err, http.StatusUnprocessableEntity)

	unbilled, err := h.bookings.ListUnbilled(h.ctx, id)
	if err != nil {
		t.Fatalf("ListUnbilled() error = %v", err)
	}
	if len(unbilled.Tokens) != 2 || unbilled.Totals.Payable != 2555 {
		t.Errorf("unbilled = %d tokens, payable %v", len(unbilled.Tokens), unbilled.Totals.Payable)
	}
}

func TestApplyTokenEdit(t *testing.T) {
	days := func(n int) *int { return &n }
	num := func(f float64) *float64 { return &f }

	tests := []struct {
		name       string
		token      entity.Token
		input      UpdateTokenInput
		wantRate   float64
		wantAmount float64
		wantErr    bool
	}{
		{
			name:       "room nights change",
			token:      entity.Token{Kind: enum.TokenKindRoom, Item: "Room 101", Rate: 1000, Qty: 1, Days: 2, GST: 12},
			input:      UpdateTokenInput{Days: days(3)},
			wantRate:   1000,
			wantAmount: 3360,
		},
		{
			name:       "room amount derives rate over nights",
			token:      entity.Token{Kind: enum.TokenKindRoom, Item: "Room 101", Rate: 1000, Qty: 1, Days: 2, GST: 12},
			input:      UpdateTokenInput{Amount: num(2800), Edited: "amount"},
			wantRate:   1250,
			wantAmount: 2800,
		},
		{
			name:       "service qty change",
			token:      entity.Token{Kind: enum.TokenKindService, Item: "Laundry", Rate: 100, Qty: 2, GST: 18},
			input:      UpdateTokenInput{Qty: num(3)},
			wantRate:   100,
			wantAmount: 354,
		},
		{
			name:       "amount alone drives rate",
			token:      entity.Token{Kind: enum.TokenKindService, Item: "Laundry", Rate: 90, Qty: 2, GST: 18},
			input:      UpdateTokenInput{Amount: num(236)},
			wantRate:   100,
			wantAmount: 236,
		},
		{
			name:    "negative nights",
			token:   entity.Token{Kind: enum.TokenKindRoom, Item: "Room 101", Rate: 1000, Days: 2},
			input:   UpdateTokenInput{Days: days(-1)},
			wantErr: true,
		},
		{
			name:    "gst out of range",
			token:   entity.Token{Kind: enum.TokenKindService, Item: "Laundry", Rate: 100, Qty: 1},
			input:   UpdateTokenInput{GST: num(101)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			err := ApplyTokenEdit(&token, &tt.input)
			if tt.wantErr {
				wantStatus(t, err, http.StatusUnprocessableEntity)
				return
			}
			if err != nil {
				t.Fatalf("ApplyTokenEdit() error = %v", err)
			}
			if token.Rate != tt.wantRate || token.Amount != tt.wantAmount {
				t.Errorf("rate, amount = %v, %v; want %v, %v", token.Rate, token.Amount, tt.wantRate, tt.wantAmount)
			}
		})
	}
}

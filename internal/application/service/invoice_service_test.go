package service

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

func TestGenerateForBookingBillsEachChargeOnce(t *testing.T) {
	h := newHarness(t)
	booking := h.book(t, h.room101, 10, 12).Booking
	if _, err := h.bookings.AddToken(h.ctx, booking.ID, &TokenInput{Kind: enum.TokenKindService, Item: "Laundry", Rate: 200, GST: 18}); err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}

	first, err := h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{
		Payments: []PaymentInput{{Mode: "Cash", Amount: 1000}},
	})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	inv := first.Invoice
	if inv.InvoiceNo != "INV-1" || len(inv.Lines) != 2 {
		t.Fatalf("invoice = %s with %d lines", inv.InvoiceNo, len(inv.Lines))
	}
	if inv.PayableAmount != 2476 || inv.Paid != 1000 || inv.Due != 1476 {
		t.Errorf("payable, paid, due = %v, %v, %v", inv.PayableAmount, inv.Paid, inv.Due)
	}
	if inv.SGST != inv.CGST || inv.SGST+inv.CGST != inv.Tax {
		t.Errorf("tax split = %v + %v, tax %v", inv.SGST, inv.CGST, inv.Tax)
	}
	for _, tok := range h.store.tokens {
		if !tok.Invoice || tok.InvoiceID == nil || *tok.InvoiceID != inv.ID {
			t.Errorf("token %s not billed on %s", tok.Item, inv.InvoiceNo)
		}
	}

	_, err = h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{})
	wantStatus(t, err, http.StatusUnprocessableEntity)

	minibar, err := h.bookings.AddToken(h.ctx, booking.ID, &TokenInput{Kind: enum.TokenKindService, Item: "Minibar", Rate: 100})
	if err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}
	_, err = h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{TokenIDs: []uuid.UUID{booking.Tokens[0].ID}})
	wantStatus(t, err, http.StatusConflict)

	second, err := h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	if second.Invoice.InvoiceNo != "INV-2" || len(second.Invoice.Lines) != 1 || second.Invoice.Lines[0].TokenID == nil || *second.Invoice.Lines[0].TokenID != minibar.ID {
		t.Errorf("second invoice = %+v", second.Invoice)
	}

	// Billed charges are frozen.
	rate := 50.0
	_, err = h.bookings.UpdateToken(h.ctx, booking.ID, minibar.ID, &UpdateTokenInput{Rate: &rate})
	wantStatus(t, err, http.StatusConflict)
	err = h.bookings.RemoveToken(h.ctx, booking.ID, booking.Tokens[0].ID)
	wantStatus(t, err, http.StatusConflict)
}

func TestGenerateForBookingSelectedCharges(t *testing.T) {
	h := newHarness(t)
	booking := h.book(t, h.room101, 10, 12).Booking
	laundry, err := h.bookings.AddToken(h.ctx, booking.ID, &TokenInput{Kind: enum.TokenKindService, Item: "Laundry", Rate: 200})
	if err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}

	detail, err := h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{TokenIDs: []uuid.UUID{laundry.ID}})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	if detail.Invoice.PayableAmount != 200 {
		t.Errorf("payable = %v, want 200", detail.Invoice.PayableAmount)
	}

	unbilled, err := h.bookings.ListUnbilled(h.ctx, booking.ID)
	if err != nil {
		t.Fatalf("ListUnbilled() error = %v", err)
	}
	if len(unbilled.Tokens) != 1 || unbilled.Tokens[0].Kind != enum.TokenKindRoom {
		t.Errorf("unbilled = %+v", unbilled.Tokens)
	}

	_, err = h.invoices.GenerateForBooking(h.ctx, booking.ID, &GenerateInvoiceInput{TokenIDs: []uuid.UUID{uuid.New()}})
	wantStatus(t, err, http.StatusNotFound)
}

func TestGenerateForBookingAppliesAdvanceOnce(t *testing.T) {
	h := newHarness(t)
	created, err := h.bookings.CreateBooking(h.ctx, &CreateBookingInput{
		Guest:    GuestInput{Name: "Asha Rao", Phone: "9800000001"},
		CheckIn:  day(10),
		CheckOut: day(12),
		Rooms:    []BookingRoomInput{{RoomID: h.room101}},
		Advance:  &entity.AdvancePayment{Mode: "UPI", Amount: 500},
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	id := created.Booking.ID
	if created.Summary.Due != 1740 {
		t.Errorf("due before invoicing = %v, want 1740", created.Summary.Due)
	}

	detail, err := h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{ApplyAdvance: true})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	if detail.Invoice.AdvanceApplied != 500 || detail.Invoice.Due != 1740 {
		t.Errorf("advance, due = %v, %v", detail.Invoice.AdvanceApplied, detail.Invoice.Due)
	}
	if !h.store.bookings[id].AdvanceApplied {
		t.Error("booking should record the advance as applied")
	}

	if _, err := h.bookings.AddToken(h.ctx, id, &TokenInput{Kind: enum.TokenKindFood, Item: "Dinner", Rate: 300}); err != nil {
		t.Fatalf("AddToken() error = %v", err)
	}
	_, err = h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{ApplyAdvance: true})
	wantStatus(t, err, http.StatusConflict)
}

func TestGenerateForBookingRejectsOverpayment(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	_, err := h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{
		Payments: []PaymentInput{{Mode: "Cash", Amount: 2000}, {Mode: "Card", Amount: 500}},
	})
	appErr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if appErr.Errors[0].Field != "payments" {
		t.Errorf("field = %q", appErr.Errors[0].Field)
	}
	if len(h.store.invoices) != 0 {
		t.Errorf("invoices = %d, want none", len(h.store.invoices))
	}
	for _, tok := range h.store.tokens {
		if tok.Invoice {
			t.Error("rejected invoice must not bill charges")
		}
	}
}

func TestGenerateForCancelledBooking(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID
	if _, err := h.bookings.Cancel(h.ctx, id, 0); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	_, err := h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{})
	wantStatus(t, err, http.StatusConflict)
}

func TestInvoiceAddPayment(t *testing.T) {
	h := newHarness(t)
	bookingID := h.book(t, h.room101, 10, 12).Booking.ID
	detail, err := h.invoices.GenerateForBooking(h.ctx, bookingID, &GenerateInvoiceInput{})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	id := detail.Invoice.ID

	paid, err := h.invoices.AddPayment(h.ctx, id, &PaymentInput{Mode: "Card", Amount: 2240})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	if paid.Invoice.Paid != 2240 || paid.Invoice.Due != 0 || paid.Excess != 0 {
		t.Errorf("paid, due, excess = %v, %v, %v", paid.Invoice.Paid, paid.Invoice.Due, paid.Excess)
	}

	_, err = h.invoices.AddPayment(h.ctx, id, &PaymentInput{Mode: "Cash", Amount: 1})
	wantStatus(t, err, http.StatusUnprocessableEntity)

	// The invoice payment counts towards the booking as well.
	booking, err := h.bookings.GetBooking(h.ctx, bookingID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if booking.Summary.Paid != 2240 || booking.Summary.Due != 0 {
		t.Errorf("booking summary = %+v", booking.Summary)
	}

	_, err = h.invoices.AddPayment(h.ctx, uuid.New(), &PaymentInput{Mode: "Cash", Amount: 1})
	wantStatus(t, err, http.StatusNotFound)
}

func TestExportRegister(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID
	if _, err := h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{}); err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}

	var buf bytes.Buffer
	if err := h.invoices.ExportRegister(h.ctx, repository.InvoiceFilter{}, &buf); err != nil {
		t.Fatalf("ExportRegister() error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) < 2 || rows[1][0] != "INV-1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestGenerateForBookingWithoutAdvanceLeavesItOpen(t *testing.T) {
	h := newHarness(t)
	id := h.book(t, h.room101, 10, 12).Booking.ID

	detail, err := h.invoices.GenerateForBooking(h.ctx, id, &GenerateInvoiceInput{ApplyAdvance: true})
	if err != nil {
		t.Fatalf("GenerateForBooking() error = %v", err)
	}
	if detail.Invoice.AdvanceApplied != 0 || detail.Invoice.Due != 2240 {
		t.Errorf("advance, due = %v, %v", detail.Invoice.AdvanceApplied, detail.Invoice.Due)
	}
	if h.store.bookings[id].AdvanceApplied {
		t.Fatal("a zero advance should not be marked as applied")
	}

	updated, err := h.bookings.UpdateDetails(h.ctx, id, 0, &UpdateBookingInput{
		Advance: &entity.AdvancePayment{Mode: "Cash", Amount: 400},
	})
	if err != nil {
		t.Fatalf("UpdateDetails() error = %v", err)
	}
	if updated.Booking.AdvancePayment.Amount != 400 {
		t.Errorf("advance = %v, want 400", updated.Booking.AdvancePayment.Amount)
	}
}

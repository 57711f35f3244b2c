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
	"github.com/sangkips/hotelpos-api/pkg/occupancy"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

var bookingNumbers = repository.NumberSource{Table: "bookings", Column: "booking_no"}

func bookingLockKey(id uuid.UUID) string {
	return "booking:" + id.String()
}

// roomsLockKey serializes availability check-then-write sequences within a hotel.
func roomsLockKey(hotelID uuid.UUID) string {
	return "rooms:" + hotelID.String()
}

// BookingService handles bookings, their charges and their payments
type BookingService struct {
	tx          repository.Transactor
	bookingRepo repository.BookingRepository
	tokenRepo   repository.TokenRepository
	paymentRepo repository.PaymentRepository
	roomRepo    repository.RoomRepository
	guestRepo   repository.GuestRepository
	counterRepo repository.CounterRepository
	settings    settingsLoader
	locker      lock.Locker
	maxNights   int
	logger      *logrus.Logger
	now         func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	tokenRepo repository.TokenRepository,
	paymentRepo repository.PaymentRepository,
	roomRepo repository.RoomRepository,
	guestRepo repository.GuestRepository,
	counterRepo repository.CounterRepository,
	hotelRepo repository.HotelRepository,
	locker lock.Locker,
	billingCfg config.BillingConfig,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		tokenRepo:   tokenRepo,
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
		guestRepo:   guestRepo,
		counterRepo: counterRepo,
		settings:    settingsLoader{hotels: hotelRepo, defaults: DefaultHotelSettings(billingCfg)},
		locker:      locker,
		maxNights:   billingCfg.MaxStayNights,
		logger:      logger,
		now:         time.Now,
	}
}

// BookingSummary is the money position of a booking across all its charges
type BookingSummary struct {
	Nights   int            `json:"nights"`
	Totals   billing.Totals `json:"totals"`
	Paid     float64        `json:"paid"`
	Advance  float64        `json:"advance"`
	Due      float64        `json:"due"`
	Excess   float64        `json:"excess"`
	Unbilled int            `json:"unbilled_tokens"`
}

// BookingDetail is a booking together with its summary
type BookingDetail struct {
	Booking *entity.Booking `json:"booking"`
	Summary BookingSummary  `json:"summary"`
}

// Summarize computes the money position of b.
func Summarize(b *entity.Booking) BookingSummary {
	totals := billing.Aggregate(b.LineItems())
	payments := b.PaymentAmounts()
	advance := b.AdvancePayment.Amount

	unbilled := 0
	for _, t := range b.Tokens {
		if !t.Invoice {
			unbilled++
		}
	}
	return BookingSummary{
		Nights:   occupancy.NightCount(b.CheckInDate, b.CheckOutDate),
		Totals:   totals,
		Paid:     billing.Sum(payments...),
		Advance:  billing.Round2(advance),
		Due:      billing.Due(totals.Payable, payments, advance),
		Excess:   billing.Excess(totals.Payable, payments, advance),
		Unbilled: unbilled,
	}
}

func detail(b *entity.Booking) *BookingDetail {
	return &BookingDetail{Booking: b, Summary: Summarize(b)}
}

// BookingRoomInput selects a room for a new booking. Rate and GST default to
// the room category's tariff.
type BookingRoomInput struct {
	RoomID uuid.UUID
	Rate   *float64
	GST    *float64
}

// CreateBookingInput represents the create booking input
type CreateBookingInput struct {
	GuestID     *uuid.UUID
	Guest       GuestInput
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    int
	ExtraGuests []byte
	Status      enum.BookingStatus
	Rooms       []BookingRoomInput
	Advance     *entity.AdvancePayment
	Source      *string
	Remarks     *string
}

func checkAdvance(a *entity.AdvancePayment) error {
	if a == nil {
		return nil
	}
	if a.Amount < 0 {
		return apperror.NewValidationError("advance_payment.amount", "Advance cannot be negative")
	}
	if a.Amount > 0 && strings.TrimSpace(a.Mode) == "" {
		return apperror.NewValidationError("advance_payment.mode", "Mode of payment is required")
	}
	return nil
}

// CreateBooking reserves rooms for a stay. Every room must be free on every
// night, and one room tariff charge is raised per room.
func (s *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*BookingDetail, error) {
	hotelID, err := requireHotel(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.load(ctx)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut, err := checkRange(input.CheckIn, input.CheckOut, s.maxNights, "checkin_date", "checkout_date")
	if err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = enum.BookingStatusConfirmed
	}
	if status == enum.BookingStatusCancelled || !status.IsValid() {
		return nil, apperror.NewValidationError("booking_status", "Booking status must be Confirmed or Blocked")
	}
	if status != enum.BookingStatusBlocked && input.GuestID == nil && strings.TrimSpace(input.Guest.Name) == "" {
		return nil, apperror.NewValidationError("guest.name", "Guest name is required")
	}
	if len(input.Rooms) == 0 {
		return nil, apperror.NewValidationError("rooms", "At least one room is required")
	}
	if err := checkAdvance(input.Advance); err != nil {
		return nil, err
	}
	nights := occupancy.NightCount(checkIn, checkOut)

	var booking *entity.Booking
	err = s.locker.WithLock(ctx, roomsLockKey(hotelID), func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			tokens, err := s.roomTokens(ctx, input.Rooms, checkIn, checkOut, nights)
			if err != nil {
				return err
			}

			idx, err := loadIndex(ctx, s.bookingRepo, checkIn, checkOut)
			if err != nil {
				return err
			}
			for _, t := range tokens {
				if !idx.Available(t.RoomKey(), checkIn, checkOut) {
					return apperror.NewConflictError(fmt.Sprintf("Room %s is not available for the selected dates", t.RoomNo))
				}
			}

			booking = &entity.Booking{
				CheckInDate:   checkIn,
				CheckOutDate:  checkOut,
				Adults:        input.Adults,
				Children:      input.Children,
				ExtraGuests:   input.ExtraGuests,
				BookingStatus: status,
				Source:        input.Source,
				Remarks:       input.Remarks,
				Tokens:        tokens,
			}
			if booking.Adults <= 0 {
				booking.Adults = 1
			}
			if input.Advance != nil {
				booking.AdvancePayment = *input.Advance
				booking.AdvancePayment.Amount = billing.Round2(input.Advance.Amount)
				if booking.AdvancePayment.Amount > 0 && booking.AdvancePayment.Date == nil {
					now := s.now()
					booking.AdvancePayment.Date = &now
				}
			}
			if err := s.attachGuest(ctx, booking, input); err != nil {
				return err
			}

			number, err := s.counterRepo.Next(ctx, settings.BookingPrefix, bookingNumbers)
			if err != nil {
				return err
			}
			booking.BookingNo = number
			return repoError(s.bookingRepo.Create(ctx, booking), "Booking")
		})
	})
	if err != nil {
		return nil, repoError(err, "Booking")
	}
	return detail(booking), nil
}

// roomTokens prices one room tariff charge per requested room.
func (s *BookingService) roomTokens(ctx context.Context, rooms []BookingRoomInput, checkIn, checkOut time.Time, nights int) ([]entity.Token, error) {
	tokens := make([]entity.Token, 0, len(rooms))
	seen := make(map[uuid.UUID]bool, len(rooms))
	for i, r := range rooms {
		field := fmt.Sprintf("rooms[%d]", i)
		if seen[r.RoomID] {
			return nil, apperror.NewValidationError(field+".room_id", "Room is listed twice")
		}
		seen[r.RoomID] = true

		room, err := s.roomRepo.GetByID(ctx, r.RoomID)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, apperror.NewValidationError(field+".room_id", "Room not found")
		}
		if !room.Active {
			return nil, apperror.NewValidationError(field+".room_id", fmt.Sprintf("Room %s is not in service", room.RoomNo))
		}

		var rate, gst float64
		var hsn, name string
		if room.Category != nil {
			rate, gst, hsn, name = room.Category.Rate, room.Category.GST, room.Category.HSN, room.Category.Name
		}
		if r.Rate != nil {
			rate = *r.Rate
		}
		if r.GST != nil {
			gst = *r.GST
		}
		li := billing.LineItem{Item: roomItemName(room.RoomNo, name), HSN: hsn, Rate: rate, Qty: float64(nights), GST: gst}
		if err := billing.ValidateItems([]billing.LineItem{li}); err != nil {
			return nil, validationFailure(err)
		}

		roomID := room.ID
		in, out := checkIn, checkOut
		tokens = append(tokens, entity.Token{
			Kind:    enum.TokenKindRoom,
			Item:    li.Item,
			HSN:     hsn,
			RoomID:  &roomID,
			RoomNo:  room.RoomNo,
			InDate:  &in,
			OutDate: &out,
			Days:    nights,
			Rate:    billing.Round2(rate),
			Qty:     1,
			GST:     gst,
			Amount:  billing.RoomTariffAmount(rate, gst, nights),
		})
	}
	return tokens, nil
}

func roomItemName(roomNo, category string) string {
	if category == "" {
		return "Room " + roomNo
	}
	return "Room " + roomNo + " (" + category + ")"
}

// attachGuest links the booking to an existing guest, or finds or creates
// one from the snapshot, and copies the guest details onto the booking.
func (s *BookingService) attachGuest(ctx context.Context, booking *entity.Booking, input *CreateBookingInput) error {
	var guest *entity.Guest
	switch {
	case input.GuestID != nil:
		g, err := s.guestRepo.GetByID(ctx, *input.GuestID)
		if err != nil {
			return err
		}
		if g == nil {
			return apperror.NewValidationError("guest_id", "Guest not found")
		}
		guest = g
	case strings.TrimSpace(input.Guest.Name) != "":
		g, err := findOrCreateGuest(ctx, s.guestRepo, &input.Guest)
		if err != nil {
			return err
		}
		guest = g
	default:
		booking.GuestName = "Blocked"
		return nil
	}

	booking.GuestID = &guest.ID
	booking.GuestName = guest.Name
	booking.GuestPhone = guest.Phone
	booking.GuestEmail = guest.Email
	booking.GuestGSTIN = guest.GSTIN
	return nil
}

// GetBooking retrieves a booking with its charges, payments and summary
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	return detail(booking), nil
}

// ListBookings lists bookings matching filter
func (s *BookingService) ListBookings(ctx context.Context, filter repository.BookingFilter, params pagination.Params) ([]entity.Booking, int64, error) {
	return s.bookingRepo.List(ctx, filter, params)
}

// withBooking runs fn on a locked, freshly read booking inside a transaction.
func (s *BookingService) withBooking(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, b *entity.Booking) error) (*entity.Booking, error) {
	var booking *entity.Booking
	err := s.locker.WithLock(ctx, bookingLockKey(id), func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			b, err := s.bookingRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if b == nil {
				return apperror.NewNotFoundError("Booking")
			}
			if err := fn(ctx, b); err != nil {
				return err
			}
			booking = b
			return nil
		})
	})
	if err != nil {
		return nil, repoError(err, "Booking")
	}
	return booking, nil
}

// reload returns the committed state of a booking after a change.
func (s *BookingService) reload(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	return s.GetBooking(ctx, id)
}

func checkVersion(b *entity.Booking, expected int) (int, error) {
	if expected == 0 {
		return b.Version, nil
	}
	if expected != b.Version {
		return 0, repoError(repository.ErrStaleVersion, "Booking")
	}
	return expected, nil
}

func closedError(b *entity.Booking) error {
	if b.BookingStatus == enum.BookingStatusCancelled {
		return apperror.NewConflictError("Booking is cancelled")
	}
	return apperror.NewConflictError("Booking is checked out")
}

// UpdateBookingInput carries the booking header fields a client may change.
// Nil fields are left alone.
type UpdateBookingInput struct {
	GuestName   *string
	GuestPhone  *string
	GuestEmail  *string
	GuestGSTIN  *string
	CheckIn     *time.Time
	CheckOut    *time.Time
	Adults      *int
	Children    *int
	ExtraGuests []byte
	Status      *enum.BookingStatus
	Advance     *entity.AdvancePayment
	Source      *string
	Remarks     *string
}

// UpdateDetails edits the booking header. expectedVersion is the version
// the client last read; 0 skips the check. Moving the dates re-prices the
// unbilled room charges and re-checks availability.
func (s *BookingService) UpdateDetails(ctx context.Context, id uuid.UUID, expectedVersion int, input *UpdateBookingInput) (*BookingDetail, error) {
	if input.CheckIn != nil || input.CheckOut != nil {
		hotelID, err := requireHotel(ctx)
		if err != nil {
			return nil, err
		}
		err = s.locker.WithLock(ctx, roomsLockKey(hotelID), func(ctx context.Context) error {
			_, err := s.updateDetails(ctx, id, expectedVersion, input)
			return err
		})
		if err != nil {
			return nil, repoError(err, "Booking")
		}
		return s.reload(ctx, id)
	}
	if _, err := s.updateDetails(ctx, id, expectedVersion, input); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *BookingService) updateDetails(ctx context.Context, id uuid.UUID, expectedVersion int, input *UpdateBookingInput) (*entity.Booking, error) {
	return s.withBooking(ctx, id, func(ctx context.Context, b *entity.Booking) error {
		version, err := checkVersion(b, expectedVersion)
		if err != nil {
			return err
		}
		if b.IsClosed() {
			return closedError(b)
		}

		if input.GuestName != nil {
			if strings.TrimSpace(*input.GuestName) == "" {
				return apperror.NewValidationError("guest_name", "Guest name is required")
			}
			b.GuestName = strings.TrimSpace(*input.GuestName)
		}
		if input.GuestPhone != nil {
			b.GuestPhone = strings.TrimSpace(*input.GuestPhone)
		}
		if input.GuestEmail != nil {
			b.GuestEmail = input.GuestEmail
		}
		if input.GuestGSTIN != nil {
			b.GuestGSTIN = input.GuestGSTIN
		}
		if input.Adults != nil {
			b.Adults = *input.Adults
		}
		if input.Children != nil {
			b.Children = *input.Children
		}
		if input.ExtraGuests != nil {
			b.ExtraGuests = input.ExtraGuests
		}
		if input.Source != nil {
			b.Source = input.Source
		}
		if input.Remarks != nil {
			b.Remarks = input.Remarks
		}
		if input.Status != nil && *input.Status != b.BookingStatus {
			switch {
			case *input.Status == enum.BookingStatusCancelled:
				return apperror.NewValidationError("booking_status", "Use the cancel action to cancel a booking")
			case !input.Status.IsValid():
				return apperror.NewValidationError("booking_status", "Booking status must be Confirmed or Blocked")
			case b.CheckedIn:
				return apperror.NewConflictError("Status cannot change after check-in")
			}
			b.BookingStatus = *input.Status
		}
		if input.Advance != nil {
			if b.AdvanceApplied {
				return apperror.NewConflictError("Advance is already applied to an invoice")
			}
			if err := checkAdvance(input.Advance); err != nil {
				return err
			}
			b.AdvancePayment = *input.Advance
			b.AdvancePayment.Amount = billing.Round2(input.Advance.Amount)
		}
		if input.CheckIn != nil || input.CheckOut != nil {
			if err := s.moveStay(ctx, b, input.CheckIn, input.CheckOut); err != nil {
				return err
			}
		}

		return s.bookingRepo.UpdateHeader(ctx, b, version)
	})
}

// moveStay changes the stay dates of b and re-prices its room charges.
// Callers hold the hotel's rooms lock.
func (s *BookingService) moveStay(ctx context.Context, b *entity.Booking, checkIn, checkOut *time.Time) error {
	in, out := b.CheckInDate, b.CheckOutDate
	if checkIn != nil {
		if b.CheckedIn && !occupancy.Day(*checkIn).Equal(occupancy.Day(in)) {
			return apperror.NewConflictError("Check-in date cannot change after check-in")
		}
		in = *checkIn
	}
	if checkOut != nil {
		out = *checkOut
	}
	in, out, err := checkRange(in, out, s.maxNights, "checkin_date", "checkout_date")
	if err != nil {
		return err
	}
	nights := occupancy.NightCount(in, out)

	idx, err := loadIndex(ctx, s.bookingRepo, in, out)
	if err != nil {
		return err
	}
	for i := range b.Tokens {
		t := &b.Tokens[i]
		if t.Kind != enum.TokenKindRoom {
			continue
		}
		if t.Invoice {
			return apperror.NewConflictError("Room charges are already invoiced, the stay cannot be moved")
		}
		if conflicts := idx.Conflicts(t.RoomKey(), in, out, b.ID.String()); len(conflicts) > 0 {
			return apperror.NewConflictError(fmt.Sprintf("Room %s is not available for the selected dates", t.RoomNo))
		}
		tin, tout := in, out
		t.InDate, t.OutDate = &tin, &tout
		t.Days = nights
		t.Amount = billing.RoomTariffAmount(t.Rate, t.GST, nights)
		if err := s.tokenRepo.Update(ctx, t); err != nil {
			return err
		}
	}

	b.CheckInDate, b.CheckOutDate = in, out
	return s.checkPaymentsCovered(b)
}

// checkPaymentsCovered rejects a change that would leave payments above the
// booking's payable amount.
func (s *BookingService) checkPaymentsCovered(b *entity.Booking) error {
	payable := billing.Aggregate(b.LineItems()).Payable
	if billing.Sum(b.PaymentAmounts()...) > payable {
		return apperror.NewValidationError("payments", fmt.Sprintf("Payments already received exceed the new payable amount %.2f", payable))
	}
	return nil
}

// CheckIn marks the guest as arrived
func (s *BookingService) CheckIn(ctx context.Context, id uuid.UUID, expectedVersion int) (*BookingDetail, error) {
	b, err := s.withBooking(ctx, id, func(ctx context.Context, b *entity.Booking) error {
		version, err := checkVersion(b, expectedVersion)
		if err != nil {
			return err
		}
		switch {
		case b.IsClosed():
			return closedError(b)
		case b.CheckedIn:
			return apperror.NewConflictError("Booking is already checked in")
		}
		now := s.now()
		b.CheckedIn = true
		b.CheckedInAt = &now
		return s.bookingRepo.UpdateHeader(ctx, b, version)
	})
	if err != nil {
		return nil, err
	}
	return detail(b), nil
}

// CheckOut marks the guest as departed and releases the rooms. A booking
// cancelled while checked in can still be checked out.
func (s *BookingService) CheckOut(ctx context.Context, id uuid.UUID, expectedVersion int) (*BookingDetail, error) {
	b, err := s.withBooking(ctx, id, func(ctx context.Context, b *entity.Booking) error {
		version, err := checkVersion(b, expectedVersion)
		if err != nil {
			return err
		}
		switch {
		case b.CheckedOut:
			return apperror.NewConflictError("Booking is already checked out")
		case !b.CheckedIn:
			return apperror.NewConflictError("Booking is not checked in")
		}
		now := s.now()
		b.CheckedOut = true
		b.CheckedOutAt = &now
		return s.bookingRepo.UpdateHeader(ctx, b, version)
	})
	if err != nil {
		return nil, err
	}

	if summary := Summarize(b); summary.Due > 0 {
		s.logger.WithFields(logrus.Fields{
			"booking_no": b.BookingNo,
			"due":        summary.Due,
		}).Warn("Booking checked out with amount due")
	}
	return detail(b), nil
}

// Cancel cancels a booking that has not checked out
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, expectedVersion int) (*BookingDetail, error) {
	b, err := s.withBooking(ctx, id, func(ctx context.Context, b *entity.Booking) error {
		version, err := checkVersion(b, expectedVersion)
		if err != nil {
			return err
		}
		if b.IsClosed() {
			return closedError(b)
		}
		b.BookingStatus = enum.BookingStatusCancelled
		return s.bookingRepo.UpdateHeader(ctx, b, version)
	})
	if err != nil {
		return nil, err
	}
	return detail(b), nil
}

// TokenInput represents a new service or food charge. Amount is used only
// when Edited is "amount"; otherwise it is computed from rate, qty and GST.
type TokenInput struct {
	Kind   enum.TokenKind
	Item   string
	HSN    string
	Rate   float64
	Qty    *float64
	GST    float64
	Amount float64
	Edited string
}

// AddToken adds a service or food charge to an open booking
func (s *BookingService) AddToken(ctx context.Context, bookingID uuid.UUID, input *TokenInput) (*entity.Token, error) {
	if input.Kind != enum.TokenKindService && input.Kind != enum.TokenKindFood {
		return nil, apperror.NewValidationError("kind", "Kind must be service or food")
	}
	li := billing.LineItem{
		Item:   strings.TrimSpace(input.Item),
		HSN:    input.HSN,
		Rate:   input.Rate,
		Qty:    billing.DefaultQty(input.Qty),
		GST:    input.GST,
		Amount: input.Amount,
	}
	if err := billing.ValidateItems([]billing.LineItem{li}); err != nil {
		return nil, validationFailure(err)
	}
	li = li.Recalculate(billing.ParseField(input.Edited))

	token := &entity.Token{
		BookingID: bookingID,
		Kind:      input.Kind,
		Item:      li.Item,
		HSN:       li.HSN,
		Rate:      li.Rate,
		Qty:       li.Qty,
		GST:       li.GST,
		Amount:    li.Amount,
	}
	_, err := s.withBooking(ctx, bookingID, func(ctx context.Context, b *entity.Booking) error {
		if b.IsClosed() {
			return closedError(b)
		}
		return s.tokenRepo.Create(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// UpdateTokenInput edits a charge. Edited names the field the user changed
// last: "amount" derives the rate, anything else derives the amount.
type UpdateTokenInput struct {
	Item   *string
	HSN    *string
	Rate   *float64
	Qty    *float64
	GST    *float64
	Amount *float64
	Days   *int
	Edited string
}

// edited picks the driving field when the client did not name one.
func (in *UpdateTokenInput) edited() billing.Field {
	if in.Edited != "" {
		return billing.ParseField(in.Edited)
	}
	if in.Amount != nil && in.Rate == nil {
		return billing.FieldAmount
	}
	return billing.FieldRate
}

// ApplyTokenEdit applies one edit to a charge. Room tariffs price over
// their night count; other charges price over their quantity.
func ApplyTokenEdit(t *entity.Token, input *UpdateTokenInput) error {
	if input.Item != nil {
		t.Item = strings.TrimSpace(*input.Item)
	}
	if input.HSN != nil {
		t.HSN = *input.HSN
	}
	if input.Rate != nil {
		t.Rate = *input.Rate
	}
	if input.GST != nil {
		t.GST = *input.GST
	}
	if input.Amount != nil {
		t.Amount = *input.Amount
	}
	if t.Kind == enum.TokenKindRoom {
		if input.Days != nil {
			if *input.Days < 0 {
				return apperror.NewValidationError("days", "Days cannot be negative")
			}
			t.Days = *input.Days
		}
	} else if input.Qty != nil {
		t.Qty = *input.Qty
	}

	li := t.LineItem()
	if err := billing.ValidateItems([]billing.LineItem{li}); err != nil {
		return validationFailure(err)
	}

	field := input.edited()
	if t.Kind == enum.TokenKindRoom && field != billing.FieldAmount {
		t.Rate = billing.Round2(t.Rate)
		t.Amount = billing.RoomTariffAmount(t.Rate, t.GST, t.Days)
		return nil
	}
	li = li.Recalculate(field)
	t.Rate, t.Amount = li.Rate, li.Amount
	return nil
}

// UpdateToken edits an unbilled charge
func (s *BookingService) UpdateToken(ctx context.Context, bookingID, tokenID uuid.UUID, input *UpdateTokenInput) (*entity.Token, error) {
	var token *entity.Token
	_, err := s.withBooking(ctx, bookingID, func(ctx context.Context, b *entity.Booking) error {
		if b.IsClosed() {
			return closedError(b)
		}
		i := findToken(b, tokenID)
		if i < 0 {
			return apperror.NewNotFoundError("Charge")
		}
		t := &b.Tokens[i]
		if t.Invoice {
			return repository.ErrAlreadyBilled
		}
		if err := ApplyTokenEdit(t, input); err != nil {
			return err
		}
		if err := s.checkPaymentsCovered(b); err != nil {
			return err
		}
		token = t
		return s.tokenRepo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// RemoveToken deletes an unbilled charge
func (s *BookingService) RemoveToken(ctx context.Context, bookingID, tokenID uuid.UUID) error {
	_, err := s.withBooking(ctx, bookingID, func(ctx context.Context, b *entity.Booking) error {
		if b.IsClosed() {
			return closedError(b)
		}
		i := findToken(b, tokenID)
		if i < 0 {
			return apperror.NewNotFoundError("Charge")
		}
		if b.Tokens[i].Invoice {
			return repository.ErrAlreadyBilled
		}
		b.Tokens = append(b.Tokens[:i], b.Tokens[i+1:]...)
		if err := s.checkPaymentsCovered(b); err != nil {
			return err
		}
		return s.tokenRepo.Delete(ctx, tokenID)
	})
	return err
}

func findToken(b *entity.Booking, id uuid.UUID) int {
	for i := range b.Tokens {
		if b.Tokens[i].ID == id {
			return i
		}
	}
	return -1
}

// PaymentInput represents a payment received
type PaymentInput struct {
	Mode   string
	Amount float64
	Date   *time.Time
	Remark *string
}

func paymentEntries(existing []entity.Payment, added ...PaymentInput) []billing.PaymentEntry {
	entries := make([]billing.PaymentEntry, 0, len(existing)+len(added))
	for _, p := range existing {
		entries = append(entries, billing.PaymentEntry{Mode: p.Mode, Amount: p.Amount})
	}
	for _, p := range added {
		entries = append(entries, billing.PaymentEntry{Mode: p.Mode, Amount: p.Amount})
	}
	return entries
}

func (p PaymentInput) toPayment(now time.Time) entity.Payment {
	date := now
	if p.Date != nil {
		date = *p.Date
	}
	return entity.Payment{
		Date:   date,
		Mode:   strings.TrimSpace(p.Mode),
		Amount: billing.Round2(p.Amount),
		Remark: p.Remark,
	}
}

// AddPayment records a payment against a booking. Payments may never sum to
// more than the booking's payable amount.
func (s *BookingService) AddPayment(ctx context.Context, bookingID uuid.UUID, input *PaymentInput) (*BookingDetail, error) {
	b, err := s.withBooking(ctx, bookingID, func(ctx context.Context, b *entity.Booking) error {
		if b.BookingStatus == enum.BookingStatusCancelled {
			return closedError(b)
		}
		payable := billing.Aggregate(b.LineItems()).Payable
		entries := paymentEntries(b.Payments, *input)
		if err := billing.ValidatePayments(payable, entries); err != nil {
			return validationFailure(err)
		}

		payment := input.toPayment(s.now())
		payment.BookingID = &b.ID
		if err := s.paymentRepo.Create(ctx, &payment); err != nil {
			return err
		}
		b.Payments = append(b.Payments, payment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail(b), nil
}

// UnbilledCharges is the set of charges the next invoice would pick up
type UnbilledCharges struct {
	Tokens []entity.Token `json:"tokens"`
	Totals billing.Totals `json:"totals"`
}

// ListUnbilled returns the booking's charges not yet on an invoice
func (s *BookingService) ListUnbilled(ctx context.Context, bookingID uuid.UUID) (*UnbilledCharges, error) {
	if _, err := s.GetBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	tokens, err := s.tokenRepo.ListUnbilled(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	items := make([]billing.LineItem, 0, len(tokens))
	for _, t := range tokens {
		items = append(items, t.LineItem())
	}
	return &UnbilledCharges{Tokens: tokens, Totals: billing.Aggregate(items)}, nil
}

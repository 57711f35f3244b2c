package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	booking.HotelID = id
	for i := range booking.Tokens {
		booking.Tokens[i].HotelID = id
	}
	for i := range booking.Payments {
		booking.Payments[i].HotelID = id
	}
	return translate(conn(ctx, r.db).Create(booking).Error)
}

func (r *bookingRepository) load(ctx context.Context, id uuid.UUID, lock bool) (*entity.Booking, error) {
	var booking entity.Booking
	query := conn(ctx, r.db).Scopes(HotelScope(ctx))
	if lock {
		query = query.Clauses(forUpdate())
	}
	err := query.First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	db := conn(ctx, r.db)
	if err := db.Where("booking_id = ?", id).Order("created_at ASC").Find(&booking.Tokens).Error; err != nil {
		return nil, err
	}
	if err := db.Where("booking_id = ?", id).Order("date ASC").Find(&booking.Payments).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.load(ctx, id, false)
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.load(ctx, id, true)
}

func (r *bookingRepository) List(ctx context.Context, filter domainRepo.BookingFilter, params pagination.Params) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := conn(ctx, r.db).Model(&entity.Booking{}).Scopes(HotelScope(ctx))
	if filter.Status != nil {
		query = query.Where("booking_status = ?", *filter.Status)
	}
	if filter.CheckedIn != nil {
		query = query.Where("checked_in = ?", *filter.CheckedIn)
	}
	if filter.From != nil {
		query = query.Where("check_out_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("check_in_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("booking_no ILIKE ? OR guest_name ILIKE ? OR guest_phone ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(pagination.Scope(params)).
		Preload("Tokens").
		Preload("Payments").
		Order("check_in_date DESC, created_at DESC").
		Find(&bookings).Error
	return bookings, total, err
}

func (r *bookingRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("check_in_date <= ? AND check_out_date >= ?", to, from).
		Preload("Tokens", "kind = ?", "room").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) UpdateHeader(ctx context.Context, booking *entity.Booking, expectedVersion int) error {
	result := conn(ctx, r.db).Model(&entity.Booking{}).
		Scopes(HotelScope(ctx)).
		Where("id = ? AND version = ?", booking.ID, expectedVersion).
		Select("guest_id", "guest_name", "guest_phone", "guest_email", "guest_gstin",
			"check_in_date", "check_out_date", "adults", "children", "extra_guests",
			"booking_status", "checked_in", "checked_out", "checked_in_at", "checked_out_at",
			"advance_payment", "advance_applied", "source", "remarks", "version", "updated_at").
		Updates(map[string]interface{}{
			"guest_id":        booking.GuestID,
			"guest_name":      booking.GuestName,
			"guest_phone":     booking.GuestPhone,
			"guest_email":     booking.GuestEmail,
			"guest_gstin":     booking.GuestGSTIN,
			"check_in_date":   booking.CheckInDate,
			"check_out_date":  booking.CheckOutDate,
			"adults":          booking.Adults,
			"children":        booking.Children,
			"extra_guests":    booking.ExtraGuests,
			"booking_status":  booking.BookingStatus,
			"checked_in":      booking.CheckedIn,
			"checked_out":     booking.CheckedOut,
			"checked_in_at":   booking.CheckedInAt,
			"checked_out_at":  booking.CheckedOutAt,
			"advance_payment": booking.AdvancePayment,
			"advance_applied": booking.AdvanceApplied,
			"source":          booking.Source,
			"remarks":         booking.Remarks,
			"version":         expectedVersion + 1,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrStaleVersion
	}
	booking.Version = expectedVersion + 1
	return nil
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new booking token repository
func NewTokenRepository(db *gorm.DB) domainRepo.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	token.HotelID = id
	return conn(ctx, r.db).Create(token).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Token, error) {
	var token entity.Token
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).First(&token, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *tokenRepository) Update(ctx context.Context, token *entity.Token) error {
	result := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Model(token).
		Where("invoice = ?", false).
		Select("item", "hsn", "room_id", "room_no", "in_date", "out_date", "days", "rate", "qty", "gst", "amount").
		Updates(token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrAlreadyBilled
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("id = ? AND invoice = ?", id, false).
		Delete(&entity.Token{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrAlreadyBilled
	}
	return nil
}

func (r *tokenRepository) ListUnbilled(ctx context.Context, bookingID uuid.UUID) ([]entity.Token, error) {
	var tokens []entity.Token
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("booking_id = ? AND invoice = ?", bookingID, false).
		Order("created_at ASC").
		Find(&tokens).Error
	return tokens, err
}

func (r *tokenRepository) LockUnbilled(ctx context.Context, bookingID uuid.UUID, ids []uuid.UUID) ([]entity.Token, error) {
	var tokens []entity.Token
	query := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Clauses(forUpdate()).
		Where("booking_id = ?", bookingID)

	if len(ids) == 0 {
		err := query.Where("invoice = ?", false).Order("created_at ASC").Find(&tokens).Error
		return tokens, err
	}

	if err := query.Where("id IN ?", ids).Order("created_at ASC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	if len(tokens) != len(ids) {
		return nil, domainRepo.ErrNotFound
	}
	for _, t := range tokens {
		if t.Invoice {
			return nil, domainRepo.ErrAlreadyBilled
		}
	}
	return tokens, nil
}

func (r *tokenRepository) MarkInvoiced(ctx context.Context, ids []uuid.UUID, invoiceID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	result := conn(ctx, r.db).Model(&entity.Token{}).
		Scopes(HotelScope(ctx)).
		Where("id IN ? AND invoice = ?", ids, false).
		Updates(map[string]interface{}{"invoice": true, "invoice_id": invoiceID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return domainRepo.ErrAlreadyBilled
	}
	return nil
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	id, err := currentHotel(ctx)
	if err != nil {
		return err
	}
	payment.HotelID = id
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("booking_id = ?", bookingID).Order("date ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).Scopes(HotelScope(ctx)).
		Where("invoice_id = ?", invoiceID).Order("date ASC").Find(&payments).Error
	return payments, err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/enum"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

// BookingFilter narrows a booking listing
type BookingFilter struct {
	Status    *enum.BookingStatus
	From      *time.Time // stays ending on or after From
	To        *time.Time // stays starting on or before To
	CheckedIn *bool
	Search    string // booking number, guest name or phone
}

// BookingRepository defines the interface for bookings and their charges
type BookingRepository interface {
	// Create inserts the booking together with its tokens and payments.
	Create(ctx context.Context, booking *entity.Booking) error
	// GetByID loads the booking with tokens and payments.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// GetByIDForUpdate is GetByID holding a row lock; only meaningful inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter BookingFilter, params pagination.Params) ([]entity.Booking, int64, error)
	// ListOverlapping returns every booking whose stay touches [from, to], with tokens.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]entity.Booking, error)
	// UpdateHeader saves the booking row if its version still equals
	// expectedVersion and bumps the version. Returns ErrStaleVersion otherwise.
	UpdateHeader(ctx context.Context, booking *entity.Booking, expectedVersion int) error
}

// TokenRepository defines the interface for booking charges
type TokenRepository interface {
	Create(ctx context.Context, token *entity.Token) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Token, error)
	Update(ctx context.Context, token *entity.Token) error
	// Delete removes an unbilled token. Returns ErrAlreadyBilled for billed ones.
	Delete(ctx context.Context, id uuid.UUID) error
	ListUnbilled(ctx context.Context, bookingID uuid.UUID) ([]entity.Token, error)
	// LockUnbilled row-locks and returns the booking's unbilled tokens. With ids
	// it returns only those, and ErrAlreadyBilled if any of them is billed.
	LockUnbilled(ctx context.Context, bookingID uuid.UUID, ids []uuid.UUID) ([]entity.Token, error)
	// MarkInvoiced flips invoice=true on ids. Returns ErrAlreadyBilled if any
	// of them was flipped already.
	MarkInvoiced(ctx context.Context, ids []uuid.UUID, invoiceID uuid.UUID) error
}

// PaymentRepository defines the interface for payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]entity.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/sangkips/hotelpos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HotelScope returns a GORM scope that filters by the hotel in ctx.
// It must be applied to every query on a hotel-owned table.
func HotelScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		hotelID, ok := domainRepo.HotelFromContext(ctx)
		if !ok {
			// Fail-safe: no hotel in context means no rows
			return db.Where("1 = 0")
		}
		return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "hotel_id"}, Value: hotelID})
	}
}

var errNoHotel = errors.New("hotel context missing")

// currentHotel returns the hotel in ctx for stamping new rows.
func currentHotel(ctx context.Context) (uuid.UUID, error) {
	id, ok := domainRepo.HotelFromContext(ctx)
	if !ok {
		return uuid.Nil, errNoHotel
	}
	return id, nil
}

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// translate maps driver errors onto domain errors.
func translate(err error) error {
	if isUniqueViolation(err) {
		return errors.Join(domainRepo.ErrDuplicate, err)
	}
	return err
}

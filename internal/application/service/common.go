package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/config"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/billing"
	"github.com/sangkips/hotelpos-api/pkg/lock"
)

// DefaultHotelSettings turns the configured billing defaults into hotel settings.
func DefaultHotelSettings(cfg config.BillingConfig) entity.HotelSettings {
	return entity.HotelSettings{
		InvoicePrefix:           cfg.InvoicePrefix,
		BookingPrefix:           cfg.BookingPrefix,
		RestaurantInvoicePrefix: cfg.RestaurantInvoicePrefix,
		KOTPrefix:               cfg.KOTPrefix,
		OrderPrefix:             cfg.OrderPrefix,
		DefaultGST:              cfg.DefaultGST,
		Currency:                cfg.Currency,
		Timezone:                "Asia/Kolkata",
		CheckInTime:             "12:00",
		CheckOutTime:            "11:00",
	}
}

// requireHotel returns the hotel the request is scoped to.
func requireHotel(ctx context.Context) (uuid.UUID, error) {
	id, ok := repository.HotelFromContext(ctx)
	if !ok {
		return uuid.Nil, apperror.NewBadRequestError("Hotel context required")
	}
	return id, nil
}

// settingsLoader reads the current hotel's settings with config defaults filled in.
type settingsLoader struct {
	hotels   repository.HotelRepository
	defaults entity.HotelSettings
}

func (l settingsLoader) load(ctx context.Context) (entity.HotelSettings, error) {
	id, err := requireHotel(ctx)
	if err != nil {
		return entity.HotelSettings{}, err
	}
	hotel, err := l.hotels.GetByID(ctx, id)
	if err != nil {
		return entity.HotelSettings{}, err
	}
	if hotel == nil {
		return entity.HotelSettings{}, apperror.NewNotFoundError("Hotel")
	}
	return hotel.Settings.WithDefaults(l.defaults), nil
}

// validationFailure turns a billing rule violation into a 422.
func validationFailure(err error) error {
	var ve *billing.ValidationError
	if errors.As(err, &ve) {
		return apperror.NewValidationError(ve.Field, ve.Message)
	}
	return err
}

// repoError maps repository and lock failures onto client errors. Anything
// it does not recognise is returned unchanged.
func repoError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStaleVersion):
		return apperror.Wrap(http.StatusConflict, resource+" was modified by another request, reload and retry", err)
	case errors.Is(err, repository.ErrAlreadyBilled):
		return apperror.Wrap(http.StatusConflict, "One or more charges are already invoiced", err)
	case errors.Is(err, repository.ErrNotFound):
		return apperror.Wrap(http.StatusNotFound, resource+" not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Wrap(http.StatusConflict, resource+" already exists", err)
	case errors.Is(err, lock.ErrNotObtained):
		return apperror.Wrap(http.StatusConflict, resource+" is being updated by another request, retry shortly", err)
	}
	return err
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

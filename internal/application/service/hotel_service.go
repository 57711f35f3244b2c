package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
	"github.com/sangkips/hotelpos-api/pkg/utils"
)

// HotelService handles hotel (tenant) operations
type HotelService struct {
	hotelRepo repository.HotelRepository
	defaults  entity.HotelSettings
}

// NewHotelService creates a new hotel service
func NewHotelService(hotelRepo repository.HotelRepository, defaults entity.HotelSettings) *HotelService {
	return &HotelService{hotelRepo: hotelRepo, defaults: defaults}
}

// CreateHotelInput represents input for creating a hotel
type CreateHotelInput struct {
	Name     string
	Slug     string
	GSTIN    *string
	Address  *string
	Phone    *string
	Email    *string
	Settings *entity.HotelSettings
}

// CreateHotel creates a new hotel. A missing slug is derived from the name;
// settings the caller leaves empty take the configured defaults.
func (s *HotelService) CreateHotel(ctx context.Context, input *CreateHotelInput) (*entity.Hotel, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	if slug == "" {
		return nil, apperror.NewValidationError("slug", "Slug is required")
	}
	exists, err := s.hotelRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Hotel slug already exists")
	}

	var settings entity.HotelSettings
	if input.Settings != nil {
		settings = *input.Settings
	}
	settings = settings.WithDefaults(s.defaults)
	if err := checkSettings(settings); err != nil {
		return nil, err
	}

	hotel := &entity.Hotel{
		Name:     input.Name,
		Slug:     slug,
		GSTIN:    input.GSTIN,
		Address:  input.Address,
		Phone:    input.Phone,
		Email:    input.Email,
		Settings: settings,
	}
	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, repoError(err, "Hotel")
	}
	return hotel, nil
}

// GetHotel retrieves a hotel by ID
func (s *HotelService) GetHotel(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperror.NewNotFoundError("Hotel")
	}
	return hotel, nil
}

// ListHotels lists hotels
func (s *HotelService) ListHotels(ctx context.Context, params pagination.Params) ([]entity.Hotel, int64, error) {
	return s.hotelRepo.List(ctx, params)
}

// UpdateHotelInput represents input for updating a hotel
type UpdateHotelInput struct {
	Name     *string
	GSTIN    *string
	Address  *string
	Phone    *string
	Email    *string
	Settings *entity.HotelSettings
}

// UpdateHotel updates a hotel. Changing a prefix starts a new number series;
// documents already issued keep their numbers.
func (s *HotelService) UpdateHotel(ctx context.Context, id uuid.UUID, input *UpdateHotelInput) (*entity.Hotel, error) {
	hotel, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		hotel.Name = *input.Name
	}
	if input.GSTIN != nil {
		hotel.GSTIN = input.GSTIN
	}
	if input.Address != nil {
		hotel.Address = input.Address
	}
	if input.Phone != nil {
		hotel.Phone = input.Phone
	}
	if input.Email != nil {
		hotel.Email = input.Email
	}
	if input.Settings != nil {
		settings := input.Settings.WithDefaults(hotel.Settings).WithDefaults(s.defaults)
		if err := checkSettings(settings); err != nil {
			return nil, err
		}
		hotel.Settings = settings
	}

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func checkSettings(st entity.HotelSettings) error {
	if st.DefaultGST < 0 || st.DefaultGST > 100 {
		return apperror.NewValidationError("settings.default_gst", "GST must be between 0 and 100")
	}
	prefixes := []struct{ field, value string }{
		{"settings.invoice_prefix", st.InvoicePrefix},
		{"settings.booking_prefix", st.BookingPrefix},
		{"settings.restaurant_invoice_prefix", st.RestaurantInvoicePrefix},
		{"settings.kot_prefix", st.KOTPrefix},
		{"settings.order_prefix", st.OrderPrefix},
	}
	for _, p := range prefixes {
		if strings.ContainsAny(p.value, "- \t") {
			return apperror.NewValidationError(p.field, "Prefix must not contain dashes or spaces")
		}
	}
	return nil
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

// GuestService handles guest-related operations
type GuestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService creates a new guest service
func NewGuestService(guestRepo repository.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// GuestInput represents the fields of a guest a client can set
type GuestInput struct {
	Name        string
	Phone       string
	Email       *string
	Address     *string
	Nationality *string
	IDProofType *string
	IDProofNo   *string
	GSTIN       *string
}

func (in *GuestInput) apply(g *entity.Guest) {
	g.Name = strings.TrimSpace(in.Name)
	g.Phone = strings.TrimSpace(in.Phone)
	g.Email = in.Email
	g.Address = in.Address
	g.Nationality = in.Nationality
	g.IDProofType = in.IDProofType
	g.IDProofNo = in.IDProofNo
	g.GSTIN = in.GSTIN
}

// CreateGuest creates a new guest. Phone numbers are unique per hotel.
func (s *GuestService) CreateGuest(ctx context.Context, input *GuestInput) (*entity.Guest, error) {
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		existing, err := s.guestRepo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A guest with this phone number already exists")
		}
	}

	guest := &entity.Guest{}
	input.apply(guest)
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, repoError(err, "Guest")
	}
	return guest, nil
}

// GetGuest retrieves a guest by ID
func (s *GuestService) GetGuest(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperror.NewNotFoundError("Guest")
	}
	return guest, nil
}

// ListGuests lists guests, optionally filtered by name, phone or email
func (s *GuestService) ListGuests(ctx context.Context, params pagination.Params, search string) ([]entity.Guest, int64, error) {
	return s.guestRepo.List(ctx, params, search)
}

// UpdateGuest replaces a guest's details
func (s *GuestService) UpdateGuest(ctx context.Context, id uuid.UUID, input *GuestInput) (*entity.Guest, error) {
	guest, err := s.GetGuest(ctx, id)
	if err != nil {
		return nil, err
	}

	if phone := strings.TrimSpace(input.Phone); phone != "" && phone != guest.Phone {
		other, err := s.guestRepo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != guest.ID {
			return nil, apperror.NewConflictError("A guest with this phone number already exists")
		}
	}

	input.apply(guest)
	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// DeleteGuest deletes a guest. Bookings keep their guest snapshot.
func (s *GuestService) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetGuest(ctx, id); err != nil {
		return err
	}
	return s.guestRepo.Delete(ctx, id)
}

// FindOrCreate returns the guest with input's phone number, creating one when
// there is none. Guests without a phone number are always created.
func (s *GuestService) FindOrCreate(ctx context.Context, input *GuestInput) (*entity.Guest, error) {
	return findOrCreateGuest(ctx, s.guestRepo, input)
}

func findOrCreateGuest(ctx context.Context, guests repository.GuestRepository, input *GuestInput) (*entity.Guest, error) {
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		existing, err := guests.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}
	guest := &entity.Guest{}
	input.apply(guest)
	if err := guests.Create(ctx, guest); err != nil {
		return nil, repoError(err, "Guest")
	}
	return guest, nil
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/billing"
)

// RoomService manages room categories and rooms
type RoomService struct {
	roomRepo repository.RoomRepository
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// CategoryInput represents the fields of a room category
type CategoryInput struct {
	Name         string
	Rate         float64
	GST          float64
	HSN          string
	MaxOccupancy int
	Description  *string
}

func (in *CategoryInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return apperror.NewValidationError("name", "Category name is required")
	case in.Rate < 0:
		return apperror.NewValidationError("rate", "Rate cannot be negative")
	case in.GST < 0 || in.GST > 100:
		return apperror.NewValidationError("gst", "GST must be between 0 and 100")
	}
	return nil
}

func (in *CategoryInput) apply(c *entity.RoomCategory) {
	c.Name = strings.TrimSpace(in.Name)
	c.Rate = billing.Round2(in.Rate)
	c.GST = in.GST
	c.HSN = in.HSN
	c.MaxOccupancy = in.MaxOccupancy
	if c.MaxOccupancy <= 0 {
		c.MaxOccupancy = 2
	}
	c.Description = in.Description
}

// CreateCategory creates a room category
func (s *RoomService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.RoomCategory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	category := &entity.RoomCategory{}
	input.apply(category)
	if err := s.roomRepo.CreateCategory(ctx, category); err != nil {
		return nil, repoError(err, "Room category")
	}
	return category, nil
}

// GetCategory retrieves a room category
func (s *RoomService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.RoomCategory, error) {
	category, err := s.roomRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Room category")
	}
	return category, nil
}

// ListCategories lists room categories
func (s *RoomService) ListCategories(ctx context.Context) ([]entity.RoomCategory, error) {
	return s.roomRepo.ListCategories(ctx)
}

// UpdateCategory updates a room category. Existing bookings keep the tariff
// they were created with.
func (s *RoomService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.RoomCategory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(category)
	if err := s.roomRepo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category that has no rooms
func (s *RoomService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	n, err := s.roomRepo.CountRoomsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.NewConflictError("Category still has rooms")
	}
	return s.roomRepo.DeleteCategory(ctx, id)
}

// RoomInput represents the fields of a room
type RoomInput struct {
	RoomNo     string
	CategoryID uuid.UUID
	Floor      *string
	Active     *bool
}

// CreateRoom creates a room in an existing category
func (s *RoomService) CreateRoom(ctx context.Context, input *RoomInput) (*entity.Room, error) {
	roomNo := strings.TrimSpace(input.RoomNo)
	if roomNo == "" {
		return nil, apperror.NewValidationError("room_no", "Room number is required")
	}
	category, err := s.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	existing, err := s.roomRepo.GetByRoomNo(ctx, roomNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Room number already exists")
	}

	room := &entity.Room{
		RoomNo:     roomNo,
		CategoryID: category.ID,
		Floor:      input.Floor,
		Active:     true,
	}
	if input.Active != nil {
		room.Active = *input.Active
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, repoError(err, "Room")
	}
	room.Category = category
	return room, nil
}

// GetRoom retrieves a room
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}
	return room, nil
}

// ListRooms lists rooms ordered by room number
func (s *RoomService) ListRooms(ctx context.Context, activeOnly bool) ([]entity.Room, error) {
	return s.roomRepo.List(ctx, activeOnly)
}

// UpdateRoom updates a room. Occupancy follows the room ID, so a renumbered
// room keeps its bookings and its old number is free for reuse.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, input *RoomInput) (*entity.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if roomNo := strings.TrimSpace(input.RoomNo); roomNo != "" && roomNo != room.RoomNo {
		other, err := s.roomRepo.GetByRoomNo(ctx, roomNo)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apperror.NewConflictError("Room number already exists")
		}
		room.RoomNo = roomNo
	}
	if input.CategoryID != uuid.Nil && input.CategoryID != room.CategoryID {
		category, err := s.GetCategory(ctx, input.CategoryID)
		if err != nil {
			return nil, err
		}
		room.CategoryID = category.ID
		room.Category = category
	}
	if input.Floor != nil {
		room.Floor = input.Floor
	}
	if input.Active != nil {
		room.Active = *input.Active
	}

	category := room.Category
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, repoError(err, "Room")
	}
	room.Category = category
	return room, nil
}

// DeleteRoom deletes a room
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	return s.roomRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"time"

	"github.com/sangkips/hotelpos-api/internal/domain/entity"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/occupancy"
)

// AvailabilityService answers room occupancy questions
type AvailabilityService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	maxNights   int
}

// NewAvailabilityService creates a new availability service. maxNights caps
// the width of a requested date range.
func NewAvailabilityService(bookingRepo repository.BookingRepository, roomRepo repository.RoomRepository, maxNights int) *AvailabilityService {
	return &AvailabilityService{bookingRepo: bookingRepo, roomRepo: roomRepo, maxNights: maxNights}
}

// GridRow is one room's availability across the requested nights
type GridRow struct {
	RoomID   string           `json:"room_id"`
	RoomNo   string           `json:"room_no"`
	Category string           `json:"category"`
	Cells    []occupancy.Cell `json:"cells"`
}

// loadIndex indexes every booking touching [from, to].
func loadIndex(ctx context.Context, bookings repository.BookingRepository, from, to time.Time) (*occupancy.Index, error) {
	list, err := bookings.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	projected := make([]occupancy.Booking, 0, len(list))
	for i := range list {
		projected = append(projected, list[i].Occupancy())
	}
	return occupancy.NewIndex(projected...), nil
}

// checkRange normalizes a stay or report range and rejects inverted or
// oversized ones.
func checkRange(from, to time.Time, maxNights int, fromField, toField string) (time.Time, time.Time, error) {
	if from.IsZero() {
		return from, to, apperror.NewValidationError(fromField, "Date is required")
	}
	if to.IsZero() {
		return from, to, apperror.NewValidationError(toField, "Date is required")
	}
	from, to = occupancy.Day(from), occupancy.Day(to)
	if to.Before(from) {
		return from, to, apperror.NewValidationError(toField, "End date cannot be before start date")
	}
	if maxNights > 0 && occupancy.NightCount(from, to) > maxNights {
		return from, to, apperror.NewValidationError(toField, "Date range is too long")
	}
	return from, to, nil
}

// Grid returns, for every active room, which nights of [from, to) are taken.
func (s *AvailabilityService) Grid(ctx context.Context, from, to time.Time) ([]GridRow, error) {
	from, to, err := checkRange(from, to, s.maxNights, "from", "to")
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	idx, err := loadIndex(ctx, s.bookingRepo, from, to)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(rooms))
	for i, r := range rooms {
		keys[i] = r.ID.String()
	}
	rows := idx.Grid(keys, from, to)

	out := make([]GridRow, len(rooms))
	for i, r := range rooms {
		out[i] = GridRow{RoomID: r.ID.String(), RoomNo: r.RoomNo, Cells: rows[i].Cells}
		if r.Category != nil {
			out[i].Category = r.Category.Name
		}
	}
	return out, nil
}

// FreeRooms lists the active rooms free on every night of the stay.
func (s *AvailabilityService) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]entity.Room, error) {
	checkIn, checkOut, err := checkRange(checkIn, checkOut, s.maxNights, "checkin", "checkout")
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	idx, err := loadIndex(ctx, s.bookingRepo, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	free := make([]entity.Room, 0, len(rooms))
	for _, r := range rooms {
		if idx.Available(r.ID.String(), checkIn, checkOut) {
			free = append(free, r)
		}
	}
	return free, nil
}

// IsOccupied reports whether room is taken on date, scanning the bookings
// around that date directly.
func (s *AvailabilityService) IsOccupied(ctx context.Context, roomNo string, date time.Time) (bool, error) {
	if roomNo == "" {
		return false, apperror.NewValidationError("room", "Room number is required")
	}
	if date.IsZero() {
		return false, apperror.NewValidationError("date", "Date is required")
	}
	room, err := s.roomRepo.GetByRoomNo(ctx, roomNo)
	if err != nil {
		return false, err
	}
	if room == nil {
		return false, apperror.NewNotFoundError("Room")
	}
	day := occupancy.Day(date)
	list, err := s.bookingRepo.ListOverlapping(ctx, day, day)
	if err != nil {
		return false, err
	}
	projected := make([]occupancy.Booking, 0, len(list))
	for i := range list {
		projected = append(projected, list[i].Occupancy())
	}
	return occupancy.IsOccupied(room.ID.String(), day, projected), nil
}

// Package occupancy decides which rooms are held on which nights.
//
// IsOccupied is the reference rule: a linear scan over bookings. Index answers
// the same question from per-room day buckets and is what request handlers use.
package occupancy

import "time"

// Status is the reservation state of a booking.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusBlocked   Status = "Blocked"
	StatusCancelled Status = "Cancelled"
)

// Stay is a room held by a booking between In and Out.
type Stay struct {
	Room string
	In   time.Time
	Out  time.Time
}

// Booking is the slice of a booking the occupancy rule looks at.
type Booking struct {
	ID         string
	CheckIn    time.Time
	CheckOut   time.Time
	Status     Status
	CheckedIn  bool
	CheckedOut bool
	Rooms      []Stay
}

// Day truncates t to its calendar date, expressed at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Covers reports whether date falls in [start, end). A stay that starts and
// ends on the same day covers that one day.
func Covers(start, end, date time.Time) bool {
	s, e, d := Day(start), Day(end), Day(date)
	if s.Equal(e) {
		return d.Equal(s)
	}
	return !d.Before(s) && d.Before(e)
}

// Holds reports whether the booking keeps its rooms off the market.
func (b Booking) Holds() bool {
	switch {
	case b.CheckedIn && !b.CheckedOut:
		return true
	case !b.CheckedIn && !b.CheckedOut && b.Status == StatusConfirmed:
		return true
	case b.Status == StatusBlocked:
		return true
	default:
		return false
	}
}

// holdsOn reports whether b holds room on date.
func (b Booking) holdsOn(room string, date time.Time) bool {
	if !Covers(b.CheckIn, b.CheckOut, date) {
		return false
	}
	for _, s := range b.Rooms {
		if s.Room == room && Covers(s.In, s.Out, date) {
			return b.Holds()
		}
	}
	return false
}

// IsOccupied scans bookings and reports whether any of them holds room on date.
func IsOccupied(room string, date time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		if b.holdsOn(room, date) {
			return true
		}
	}
	return false
}

// Nights lists the days covered by [from, to). A same-day range yields that
// day; a range that ends before it starts yields nothing.
func Nights(from, to time.Time) []time.Time {
	s, e := Day(from), Day(to)
	if s.Equal(e) {
		return []time.Time{s}
	}
	if e.Before(s) {
		return nil
	}
	days := make([]time.Time, 0, int(e.Sub(s).Hours()/24))
	for d := s; d.Before(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// NightCount is the number of nights billed for a stay. Same-day stays count as one.
func NightCount(from, to time.Time) int {
	return len(Nights(from, to))
}

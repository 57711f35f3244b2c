package occupancy

import (
	"sort"
	"sync"
	"time"
)

type cell struct {
	room string
	day  int64
}

func dayKey(t time.Time) int64 {
	return Day(t).Unix() / 86400
}

// Index keeps, for every room and day, the set of bookings holding it.
// Bookings are added and removed one at a time as they change. Safe for
// concurrent use.
type Index struct {
	mu       sync.RWMutex
	cells    map[cell]map[string]struct{}
	bookings map[string][]cell
}

// NewIndex builds an index over bookings.
func NewIndex(bookings ...Booking) *Index {
	idx := &Index{
		cells:    make(map[cell]map[string]struct{}),
		bookings: make(map[string][]cell),
	}
	for _, b := range bookings {
		idx.add(b)
	}
	return idx
}

// Add indexes b, replacing any earlier version of the same booking.
func (x *Index) Add(b Booking) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.remove(b.ID)
	x.add(b)
}

// Remove drops a booking from the index.
func (x *Index) Remove(id string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.remove(id)
}

func (x *Index) add(b Booking) {
	if !b.Holds() {
		return
	}
	var held []cell
	for _, s := range b.Rooms {
		for _, d := range Nights(s.In, s.Out) {
			if !Covers(b.CheckIn, b.CheckOut, d) {
				continue
			}
			c := cell{room: s.Room, day: dayKey(d)}
			ids, ok := x.cells[c]
			if !ok {
				ids = make(map[string]struct{})
				x.cells[c] = ids
			}
			if _, dup := ids[b.ID]; dup {
				continue
			}
			ids[b.ID] = struct{}{}
			held = append(held, c)
		}
	}
	if len(held) > 0 {
		x.bookings[b.ID] = held
	}
}

func (x *Index) remove(id string) {
	for _, c := range x.bookings[id] {
		ids := x.cells[c]
		delete(ids, id)
		if len(ids) == 0 {
			delete(x.cells, c)
		}
	}
	delete(x.bookings, id)
}

// Occupied reports whether any booking holds room on date.
func (x *Index) Occupied(room string, date time.Time) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.cells[cell{room: room, day: dayKey(date)}]) > 0
}

// OccupiedBy returns the ids of the bookings holding room on date, sorted.
func (x *Index) OccupiedBy(room string, date time.Time) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.holders(room, date)
}

func (x *Index) holders(room string, date time.Time) []string {
	ids := x.cells[cell{room: room, day: dayKey(date)}]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Available reports whether room is free on every night of [from, to).
func (x *Index) Available(room string, from, to time.Time) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, d := range Nights(from, to) {
		if len(x.cells[cell{room: room, day: dayKey(d)}]) > 0 {
			return false
		}
	}
	return true
}

// Conflicts returns the bookings, other than ignore, that hold room on any
// night of [from, to).
func (x *Index) Conflicts(room string, from, to time.Time, ignore string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, d := range Nights(from, to) {
		for _, id := range x.holders(room, d) {
			if id == ignore {
				continue
			}
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Cell is one room-night of an availability grid.
type Cell struct {
	Date       time.Time `json:"date"`
	Occupied   bool      `json:"occupied"`
	BookingIDs []string  `json:"booking_ids,omitempty"`
}

// Row is the availability of one room across a date range.
type Row struct {
	Room  string `json:"room"`
	Cells []Cell `json:"cells"`
}

// Grid lays out rooms against the nights of [from, to).
func (x *Index) Grid(rooms []string, from, to time.Time) []Row {
	days := Nights(from, to)

	x.mu.RLock()
	defer x.mu.RUnlock()
	rows := make([]Row, 0, len(rooms))
	for _, room := range rooms {
		row := Row{Room: room, Cells: make([]Cell, 0, len(days))}
		for _, d := range days {
			ids := x.holders(room, d)
			row.Cells = append(row.Cells, Cell{Date: d, Occupied: len(ids) > 0, BookingIDs: ids})
		}
		rows = append(rows, row)
	}
	return rows
}

// Len returns the number of bookings currently holding at least one room-night.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.bookings)
}

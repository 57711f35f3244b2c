package occupancy

import (
	"math/rand"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bookingA(status Status) Booking {
	return Booking{
		ID:       "A",
		CheckIn:  date("2024-01-10"),
		CheckOut: date("2024-01-12"),
		Status:   status,
		Rooms:    []Stay{{Room: "101", In: date("2024-01-10"), Out: date("2024-01-12")}},
	}
}

func TestIsOccupied(t *testing.T) {
	confirmed := []Booking{bookingA(StatusConfirmed)}
	if !IsOccupied("101", date("2024-01-10"), confirmed) {
		t.Fatal("check-in day should be occupied")
	}
	if !IsOccupied("101", date("2024-01-11"), confirmed) {
		t.Fatal("middle night should be occupied")
	}
	if IsOccupied("101", date("2024-01-12"), confirmed) {
		t.Fatal("checkout day is exclusive")
	}
	if IsOccupied("102", date("2024-01-10"), confirmed) {
		t.Fatal("other rooms are free")
	}
	if IsOccupied("101", date("2024-01-10"), []Booking{bookingA(StatusCancelled)}) {
		t.Fatal("cancelled bookings hold nothing")
	}
}

func TestHolds(t *testing.T) {
	cases := []struct {
		name       string
		status     Status
		checkedIn  bool
		checkedOut bool
		expected   bool
	}{
		{"confirmed", StatusConfirmed, false, false, true},
		{"blocked", StatusBlocked, false, false, true},
		{"cancelled", StatusCancelled, false, false, false},
		{"in house", StatusConfirmed, true, false, true},
		{"checked out", StatusConfirmed, true, true, false},
		{"blocked after checkout", StatusBlocked, true, true, true},
	}
	for _, tc := range cases {
		b := Booking{Status: tc.status, CheckedIn: tc.checkedIn, CheckedOut: tc.checkedOut}
		if got := b.Holds(); got != tc.expected {
			t.Errorf("%s: Holds() = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestCovers_SameDay(t *testing.T) {
	d := date("2024-03-01")
	if !Covers(d, d, d) {
		t.Fatal("same-day range should cover its day")
	}
	if Covers(d, d, d.AddDate(0, 0, 1)) {
		t.Fatal("same-day range should not cover the next day")
	}
	if Covers(d.AddDate(0, 0, 2), d, d.AddDate(0, 0, 1)) {
		t.Fatal("inverted range covers nothing")
	}
}

func TestDay_IgnoresClock(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, 1, 10, 23, 30, 0, 0, ist)
	if !Day(late).Equal(date("2024-01-10")) {
		t.Fatalf("expected 2024-01-10, got %v", Day(late))
	}
}

func TestNights(t *testing.T) {
	if n := NightCount(date("2024-01-10"), date("2024-01-13")); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}
	if n := NightCount(date("2024-01-10"), date("2024-01-10")); n != 1 {
		t.Fatalf("same-day stay should count as 1 night, got %d", n)
	}
	if got := Nights(date("2024-01-10"), date("2024-01-09")); got != nil {
		t.Fatalf("inverted range should yield nothing, got %v", got)
	}
	leap := Nights(date("2024-02-28"), date("2024-03-01"))
	if len(leap) != 2 || !leap[1].Equal(date("2024-02-29")) {
		t.Fatalf("expected to pass through Feb 29, got %v", leap)
	}
}

func TestIndex_MatchesReference(t *testing.T) {
	idx := NewIndex(bookingA(StatusConfirmed))
	if !idx.Occupied("101", date("2024-01-10")) {
		t.Fatal("expected 101 occupied on check-in day")
	}
	if idx.Occupied("101", date("2024-01-12")) {
		t.Fatal("checkout day should be free")
	}

	idx.Add(bookingA(StatusCancelled))
	if idx.Occupied("101", date("2024-01-10")) {
		t.Fatal("re-adding as cancelled should release the room")
	}
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d", idx.Len())
	}
}

func TestIndex_SameDayStay(t *testing.T) {
	d := date("2024-05-05")
	b := Booking{ID: "S", CheckIn: d, CheckOut: d, Status: StatusBlocked,
		Rooms: []Stay{{Room: "201", In: d, Out: d}}}
	idx := NewIndex(b)
	if !idx.Occupied("201", d) || !IsOccupied("201", d, []Booking{b}) {
		t.Fatal("same-day block should hold its day")
	}
	if idx.Available("201", d, d.AddDate(0, 0, 1)) {
		t.Fatal("room should not be available on the blocked day")
	}
	if !idx.Available("201", d.AddDate(0, 0, 1), d.AddDate(0, 0, 3)) {
		t.Fatal("room should be free after the block")
	}
}

func TestIndex_RemoveAndConflicts(t *testing.T) {
	a := bookingA(StatusConfirmed)
	b := Booking{ID: "B", CheckIn: date("2024-01-11"), CheckOut: date("2024-01-14"), Status: StatusBlocked,
		Rooms: []Stay{{Room: "101", In: date("2024-01-11"), Out: date("2024-01-14")}}}
	idx := NewIndex(a, b)

	ids := idx.OccupiedBy("101", date("2024-01-11"))
	if len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Fatalf("expected [A B], got %v", ids)
	}
	conflicts := idx.Conflicts("101", date("2024-01-09"), date("2024-01-13"), "A")
	if len(conflicts) != 1 || conflicts[0] != "B" {
		t.Fatalf("expected [B], got %v", conflicts)
	}

	idx.Remove("B")
	if idx.Occupied("101", date("2024-01-13")) {
		t.Fatal("removed booking should release its nights")
	}
	if !idx.Occupied("101", date("2024-01-11")) {
		t.Fatal("A should still hold the 11th")
	}
}

func TestIndex_Grid(t *testing.T) {
	idx := NewIndex(bookingA(StatusConfirmed))
	rows := idx.Grid([]string{"101", "102"}, date("2024-01-09"), date("2024-01-13"))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []bool{false, true, true, false}
	for i, c := range rows[0].Cells {
		if c.Occupied != want[i] {
			t.Errorf("101 cell %d (%s): occupied = %v, want %v", i, c.Date.Format("2006-01-02"), c.Occupied, want[i])
		}
	}
	for _, c := range rows[1].Cells {
		if c.Occupied {
			t.Fatalf("102 should be free on %v", c.Date)
		}
	}
}

// The index must agree with the linear scan for every room and date.
func TestIndex_AgreesWithIsOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date("2024-01-01")
	rooms := []string{"101", "102", "103", "201"}
	statuses := []Status{StatusConfirmed, StatusBlocked, StatusCancelled}

	var bookings []Booking
	for i := 0; i < 60; i++ {
		in := base.AddDate(0, 0, rng.Intn(40))
		out := in.AddDate(0, 0, rng.Intn(5))
		b := Booking{
			ID:         string(rune('a'+i%26)) + string(rune('0'+i/26)),
			CheckIn:    in,
			CheckOut:   out,
			Status:     statuses[rng.Intn(len(statuses))],
			CheckedIn:  rng.Intn(2) == 0,
			CheckedOut: rng.Intn(3) == 0,
		}
		for j := 0; j <= rng.Intn(2); j++ {
			sIn := in.AddDate(0, 0, rng.Intn(2))
			sOut := sIn.AddDate(0, 0, rng.Intn(4))
			b.Rooms = append(b.Rooms, Stay{Room: rooms[rng.Intn(len(rooms))], In: sIn, Out: sOut})
		}
		bookings = append(bookings, b)
	}

	idx := NewIndex(bookings...)
	for d := base.AddDate(0, 0, -1); d.Before(base.AddDate(0, 0, 50)); d = d.AddDate(0, 0, 1) {
		for _, room := range rooms {
			if got, want := idx.Occupied(room, d), IsOccupied(room, d, bookings); got != want {
				t.Fatalf("room %s on %s: index = %v, scan = %v", room, d.Format("2006-01-02"), got, want)
			}
		}
	}
}

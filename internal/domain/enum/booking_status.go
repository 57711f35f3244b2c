package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BookingStatus is the reservation state of a booking. Check-in and check-out
// are tracked separately as flags.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusBlocked   BookingStatus = "Blocked"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusBlocked, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := BookingStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid booking status %q", str)
	}
	*s = v
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *BookingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BookingStatusConfirmed
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = BookingStatus(v)
	case []byte:
		*s = BookingStatus(string(v))
	}
	return nil
}

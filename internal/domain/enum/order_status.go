package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TableOrderStatus is the state of a restaurant table order
type TableOrderStatus int

const (
	TableOrderStatusOpen      TableOrderStatus = 0
	TableOrderStatusBilled    TableOrderStatus = 1
	TableOrderStatusCancelled TableOrderStatus = 2
)

var tableOrderStatusNames = [...]string{"Open", "Billed", "Cancelled"}

func (s TableOrderStatus) String() string {
	if s < 0 || int(s) >= len(tableOrderStatusNames) {
		return "Unknown"
	}
	return tableOrderStatusNames[s]
}

// ParseTableOrderStatus looks a status up by its name.
func ParseTableOrderStatus(name string) (TableOrderStatus, bool) {
	for i, n := range tableOrderStatusNames {
		if n == name {
			return TableOrderStatus(i), true
		}
	}
	return TableOrderStatusOpen, false
}

func (s TableOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TableOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TableOrderStatus(i)
		return nil
	}
	v, ok := ParseTableOrderStatus(str)
	if !ok {
		return fmt.Errorf("invalid table order status %q", str)
	}
	*s = v
	return nil
}

func (s TableOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TableOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableOrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TableOrderStatus(v)
	case int:
		*s = TableOrderStatus(v)
	}
	return nil
}

// KOTStatus tracks a kitchen order ticket through the kitchen
type KOTStatus int

const (
	KOTStatusPending   KOTStatus = 0
	KOTStatusPreparing KOTStatus = 1
	KOTStatusServed    KOTStatus = 2
)

var kotStatusNames = [...]string{"Pending", "Preparing", "Served"}

func (s KOTStatus) String() string {
	if s < 0 || int(s) >= len(kotStatusNames) {
		return "Unknown"
	}
	return kotStatusNames[s]
}

// ParseKOTStatus maps a status name to a KOTStatus.
func ParseKOTStatus(name string) (KOTStatus, bool) {
	for i, n := range kotStatusNames {
		if n == name {
			return KOTStatus(i), true
		}
	}
	return KOTStatusPending, false
}

// CanAdvanceTo reports whether the ticket may move to next. Tickets only move forward.
func (s KOTStatus) CanAdvanceTo(next KOTStatus) bool {
	return next > s && int(next) < len(kotStatusNames)
}

func (s KOTStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *KOTStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = KOTStatus(i)
		return nil
	}
	v, ok := ParseKOTStatus(str)
	if !ok {
		return fmt.Errorf("invalid kitchen ticket status %q", str)
	}
	*s = v
	return nil
}

func (s KOTStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *KOTStatus) Scan(value interface{}) error {
	if value == nil {
		*s = KOTStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = KOTStatus(v)
	case int:
		*s = KOTStatus(v)
	}
	return nil
}

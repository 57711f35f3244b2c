package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TokenKind is the ledger a booking charge belongs to.
type TokenKind string

const (
	TokenKindRoom    TokenKind = "room"
	TokenKindService TokenKind = "service"
	TokenKindFood    TokenKind = "food"
)

func (k TokenKind) String() string {
	return string(k)
}

func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindRoom, TokenKindService, TokenKindFood:
		return true
	}
	return false
}

func (k TokenKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *TokenKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v := TokenKind(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid token kind %q", str)
	}
	*k = v
	return nil
}

func (k TokenKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *TokenKind) Scan(value interface{}) error {
	if value == nil {
		*k = TokenKindService
		return nil
	}
	switch v := value.(type) {
	case string:
		*k = TokenKind(v)
	case []byte:
		*k = TokenKind(string(v))
	}
	return nil
}

// InvoiceKind tells room invoices from restaurant bills.
type InvoiceKind string

const (
	InvoiceKindRoom       InvoiceKind = "room"
	InvoiceKindRestaurant InvoiceKind = "restaurant"
)

func (k InvoiceKind) String() string {
	return string(k)
}

func (k InvoiceKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *InvoiceKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = InvoiceKind(v)
	case []byte:
		*k = InvoiceKind(string(v))
	default:
		*k = InvoiceKindRoom
	}
	return nil
}

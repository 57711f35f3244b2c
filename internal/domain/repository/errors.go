package repository

import "errors"

var (
	// ErrStaleVersion means the record changed since the caller read it.
	ErrStaleVersion = errors.New("record was modified by another request")

	// ErrAlreadyBilled means at least one charge is already on an invoice.
	ErrAlreadyBilled = errors.New("charge already invoiced")

	// ErrNotFound means a referenced record does not exist in the hotel.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate wraps unique constraint violations.
	ErrDuplicate = errors.New("duplicate record")
)

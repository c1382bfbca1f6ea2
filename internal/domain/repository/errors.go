package repository

import "errors"

// Sentinel errors implementations translate driver failures into, so callers
// can branch without importing storage internals.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a
	// unique constraint (bill numbers, table numbers).
	ErrDuplicateKey = errors.New("duplicate key value")
)

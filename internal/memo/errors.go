package memo

import "errors"

var (
	// ErrNotFound is returned when an operation references a missing id.
	// The collections are left unchanged.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a required field is blank or a value
	// is outside its allowed set. The collections are left unchanged.
	ErrValidation = errors.New("validation failed")
)

package models

import "errors"

// Core error taxonomy. Repository and service code wrap these with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	// ErrNotFound is returned when a referenced entity does not exist or
	// does not belong to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails validation before any
	// mutation takes place.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned on uniqueness violations, e.g. a duplicate
	// category name.
	ErrConflict = errors.New("conflict")

	// ErrStore is returned on underlying persistence failures.
	ErrStore = errors.New("store error")
)

package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidPageSize is returned when a page size is below 1.
	ErrInvalidPageSize = errors.New("page size must be at least 1")

	// ErrUnknownCategory is returned when an English category is not recognized.
	ErrUnknownCategory = errors.New("unknown category")
)

package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrInvalidOutcome is returned when an outcome label is empty.
	ErrInvalidOutcome = errors.New("reply outcome must not be empty")
)

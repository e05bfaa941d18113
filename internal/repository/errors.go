package repository

import "errors"

// Common repository errors
var (
	// ErrPlaceNotFound is returned when a place is not found
	ErrPlaceNotFound = errors.New("place not found")

	// ErrTipNotFound is returned when a tip is not found
	ErrTipNotFound = errors.New("tip not found")
)

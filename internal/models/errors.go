package models

import "errors"

var (
	// ErrDataUnavailable is returned when a source table is missing or malformed.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrEmptySet is returned when summary statistics are requested over zero rows.
	ErrEmptySet = errors.New("empty set")
)

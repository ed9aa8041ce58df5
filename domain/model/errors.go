package model

import "errors"

var (
	// ErrInvalidValue is returned when a value cannot be converted to its column type
	ErrInvalidValue = errors.New("value does not match column type")
)

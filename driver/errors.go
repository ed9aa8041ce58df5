package driver

import "errors"

// Predefined errors
var (
	// ErrMalformedDescriptor is returned when a connection descriptor cannot be parsed
	ErrMalformedDescriptor = errors.New("csvsql driver: malformed connection descriptor")

	// ErrDriverUnavailable is returned when no driver is built in for the descriptor's backend
	ErrDriverUnavailable = errors.New("csvsql driver: driver unavailable")

	// ErrUnreachable is returned when the database does not answer a ping
	ErrUnreachable = errors.New("csvsql driver: database unreachable")
)

package infer

import "errors"

var (
	// ErrMalformedInput is returned when an input cannot be decoded as its format
	ErrMalformedInput = errors.New("infer: malformed input")

	// ErrUnknownEncoding is returned when a character encoding name is not recognized
	ErrUnknownEncoding = errors.New("infer: unknown encoding")

	// ErrInvalidOption is returned for reader options that can never be satisfied
	ErrInvalidOption = errors.New("infer: invalid option")
)

package input

import "errors"

var (
	// ErrInputNotFound indicates that no channel produced any data.
	ErrInputNotFound = errors.New("plugin input not found")

	// ErrMalformedInput indicates that data was found but could not be
	// turned into a payload.
	ErrMalformedInput = errors.New("malformed plugin input")
)

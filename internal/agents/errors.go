package agents

import "errors"

var (
	// ErrParse indicates no usable JSON payload could be extracted from a
	// model response.
	ErrParse = errors.New("could not parse model response")

	// ErrUnknownAgent indicates a requested agent name is not registered.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrInvalidInput indicates a product description that cannot seed a
	// listing.
	ErrInvalidInput = errors.New("invalid product input")
)

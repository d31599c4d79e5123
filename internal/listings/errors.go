package listings

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("listing not found")
	ErrDuplicate  = errors.New("listing already exists")
	ErrValidation = errors.New("invalid listing request")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

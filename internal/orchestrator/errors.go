package orchestrator

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

// MapHTTPStatus converts orchestration errors to HTTP status codes. Store
// errors defer to the listings mapping.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, agents.ErrUnknownAgent):
		return http.StatusBadRequest
	case errors.Is(err, agents.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return listings.MapHTTPStatus(err)
	}
}

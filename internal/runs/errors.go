package runs

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("run not found")
	ErrDuplicate  = errors.New("run already recorded")
	ErrInvalidRun = errors.New("invalid run")
)

// MapHTTPStatus translates domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRun):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/screener/internal/adapters/repository"
	service "github.com/okian/screener/internal/app"
	"github.com/okian/screener/internal/catalog"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrUnavailable  = errors.New("service unavailable")
)

// wrap prefixes err with the operation that failed.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// writeServiceError maps an error from the service layer to a status code
// and error code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrMissingJobDescription),
		errors.Is(err, service.ErrNoCandidates),
		errors.Is(err, service.ErrTooManyCandidates),
		errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, err))
	case errors.Is(err, catalog.ErrUnknownRole):
		writeError(w, http.StatusNotFound, "unknown_role", wrap(op, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", wrap(op, err))
	case errors.Is(err, service.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", wrap(op, fmt.Errorf("%w: %w", ErrBackpressure, err)))
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "unavailable", wrap(op, fmt.Errorf("%w: %w", ErrUnavailable, err)))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
	}
}

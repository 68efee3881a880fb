// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrDependentActivity = errors.New("record has dependent activity")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvoiceCancelled  = errors.New("invoice is cancelled")
)

type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.kind }

// E wraps a sentinel with a client-facing message. The message alone is what
// reaches the response body.
func E(kind error, msg string) error {
	return &apiError{kind: kind, msg: msg}
}

// RespondError maps domain errors to HTTP responses. Unknown errors become a
// generic 500 so internal detail never reaches the client.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDependentActivity):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidAmount):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvoiceCancelled):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

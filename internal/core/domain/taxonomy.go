package domain

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a domain error to the HTTP status code the httpapi
// adapter should respond with. Errors not recognised here map to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrModelMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBusy):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// CLI exit codes: 0 on success, 1 for a user error (bad input, not
// found, already exists — the caller can fix it), 2 for an engine
// failure (storage, inference, or anything else unexpected).
const (
	ExitOK            = 0
	ExitUserError     = 1
	ExitEngineFailure = 2
)

// ExitCode maps a domain error to the CLI process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyExists):
		return ExitUserError
	default:
		return ExitEngineFailure
	}
}

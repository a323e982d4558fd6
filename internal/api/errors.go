package api

import (
	"errors"
	"net/http"

	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/service/auth"
	"github.com/dnwandana/todo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. This is
// the only place that translates the error taxonomy into transport terms, so
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidLimit),
		errors.Is(err, pagination.ErrInvalidSortOrder),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrSearchTooLong):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the given
// error. Unknown errors get a generic message to avoid information leakage.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrTodoNotFound):
		return "Todo not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidLimit),
		errors.Is(err, pagination.ErrInvalidSortOrder),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrSearchTooLong),
		errors.Is(err, store.ErrInvalidEntity):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

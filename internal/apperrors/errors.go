package apperrors

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP
// statuses with errors.Is; anything not in this set is reported as an
// internal error.
var (
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("invalid or missing credentials")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrItemUnavailable = errors.New("menu item is not available")
)

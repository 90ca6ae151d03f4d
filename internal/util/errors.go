// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Error taxonomy shared across the service layer. Handlers map these to
// HTTP status codes; anything matching none of them is unexpected and
// surfaces as a generic internal error.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("invalid input")

	// Specific validation failures wrap ErrValidation so callers can match
	// either the broad kind or the precise cause.
	ErrInsufficientFunds   = fmt.Errorf("%w: insufficient funds", ErrValidation)
	ErrSameAccountTransfer = fmt.Errorf("%w: cannot transfer to the same account", ErrValidation)

	// Specific conflicts wrap ErrConflict the same way.
	ErrEmailTaken      = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUserHasAccounts = fmt.Errorf("%w: cannot delete user with open accounts", ErrConflict)

	// ErrInvalidCredentials belongs to the login surface, not the core
	// taxonomy; it maps to 401 rather than 403.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsError reports whether err matches target via errors.Is.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

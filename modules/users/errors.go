package users

import (
	"fmt"

	"github.com/example/ecommerce-api/domain/errs"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = fmt.Errorf("user %w", errs.ErrNotFound)
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = fmt.Errorf("%w: user with this email already exists", errs.ErrConflict)
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errs.NewValidationError("email", "has an invalid format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errs.NewValidationError("password", "must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errs.NewValidationError("password", "must be at most 72 characters")
)

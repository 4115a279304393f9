package user

import "errors"

// Domain errors for the user sync service
var (
	// Validation errors
	ErrEmptyExternalID = errors.New("external id cannot be empty")
	ErrEmptyEmail      = errors.New("email cannot be empty")

	// Business logic errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)

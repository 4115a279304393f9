package userrole

import "errors"

// Domain errors for the project membership service
var (
	// Validation errors
	ErrRoleNotDefined = errors.New("role is not defined for this project")
	ErrDuplicateRole  = errors.New("user already has this role for this project")

	// Business logic errors
	ErrUserRoleNotFound = errors.New("user role not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrUserNotFound     = errors.New("user not found")
)

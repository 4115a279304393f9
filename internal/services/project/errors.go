package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName   = errors.New("project name cannot be empty")
	ErrNameTooLong = errors.New("project name cannot exceed 255 characters")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
)

package template

import "errors"

// Domain errors for the template service
var (
	// Validation errors
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTooLong = errors.New("name cannot exceed 255 characters")

	// Business logic errors
	ErrTemplateNotFound      = errors.New("template not found")
	ErrSourceProjectNotFound = errors.New("source project not found")
)

package swimlane

import "errors"

// Domain errors for swim lane service
var (
	// Validation errors
	ErrEmptyName = errors.New("swim lane name cannot be empty")

	// Business logic errors
	ErrSwimLaneNotFound = errors.New("swim lane not found")
	ErrProjectNotFound  = errors.New("project not found")
)

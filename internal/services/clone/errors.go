package clone

import "errors"

// Domain errors for the clone service
var (
	// Validation errors
	ErrEmptyName            = errors.New("project name cannot be empty")
	ErrNameTooLong          = errors.New("project name cannot exceed 255 characters")
	ErrTasksRequireStatuses = errors.New("tasks cannot be included without statuses")

	// Business logic errors
	ErrSourceProjectNotFound = errors.New("source project not found")

	// Internal consistency errors
	ErrLaneNotMapped = errors.New("task references a swim lane with no clone mapping")
)

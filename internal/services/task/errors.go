package task

import "errors"

// Domain errors for task service
var (
	// Validation errors
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// Business logic errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrSwimLaneNotFound = errors.New("swim lane not found or does not belong to the project")
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

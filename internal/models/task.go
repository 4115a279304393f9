package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single card on the board. A task belongs to exactly one
// swim lane, which must belong to the same project as the task.
type Task struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	SwimLaneID  uuid.UUID
	Title       string
	Description string
	AssignedTo  *uuid.UUID // nil when unassigned
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

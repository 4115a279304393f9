package models

import (
	"time"

	"github.com/google/uuid"
)

// SwimLane represents a status column within a project (e.g. "Backlog", "Done").
// Order defines the display position; lanes are always read ordered by it so
// board rendering and cloning stay deterministic.
type SwimLane struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

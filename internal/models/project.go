package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a container for swim lanes, tasks and member roles.
// Projects are the top-level organizational unit.
type Project struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	Roles     []string // project-scoped role labels, plain strings
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole links a user to a project with a role label.
// Role must be one of the project's role strings at creation time; the link is
// not re-validated if the project's role list later changes.
type UserRole struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRoleWithUser is a DTO pairing a membership with the user's details,
// used by the member list view.
type UserRoleWithUser struct {
	UserRole
	User User
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account synced from the external auth provider.
// Users are never created by this service directly; the auth sync endpoint
// upserts them from provider sign-up data.
type User struct {
	ID         uuid.UUID
	ExternalID string // identity in the external auth provider
	Email      string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

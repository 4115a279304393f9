package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	EventProjectCreated      EventType = "project_created"
	EventProjectUpdated      EventType = "project_updated"
	EventProjectDeleted      EventType = "project_deleted"
	EventProjectCloned       EventType = "project_cloned"
	EventTemplateSaved       EventType = "template_saved"
	EventTemplateDeleted     EventType = "template_deleted"
	EventProjectInstantiated EventType = "project_instantiated"
	EventBoardChanged        EventType = "board_changed"
)

// Event represents a change notification published after a successful commit.
type Event struct {
	Type      EventType
	ProjectID uuid.UUID // which project was modified or created
	ActorID   uuid.UUID // the user who performed the operation
	Timestamp time.Time
}

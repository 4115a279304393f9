package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a saved, project-independent snapshot of a project's structure.
// The nested collections are stored as JSON and are nil when the corresponding
// inclusion flag was off at save time.
type Template struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	Statuses    []TemplateStatus
	Roles       []string
	Users       []TemplateUser
	Tasks       []TemplateTask
	CreatedAt   time.Time
}

// TemplateStatus captures a swim lane by name and position.
type TemplateStatus struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// TemplateUser captures a project membership by shared user identity.
type TemplateUser struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// TemplateTask captures a task together with the order of the lane it sat in,
// so instantiation can place it into the matching lane of the new project.
type TemplateTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StatusOrder int        `json:"status_order"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// HasAssignees reports whether any task in the template carries an assignee.
// The UI uses this to decide whether to surface the keep-assignees option.
func (t *Template) HasAssignees() bool {
	for _, task := range t.Tasks {
		if task.AssignedTo != nil {
			return true
		}
	}
	return false
}

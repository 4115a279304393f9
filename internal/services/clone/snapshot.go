package clone

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// Flags selects which sub-graphs of a source project are copied.
// IncludeTasks requires IncludeStatuses; KeepAssignees requires IncludeUsers.
type Flags struct {
	IncludeStatuses bool
	IncludeRoles    bool
	IncludeUsers    bool
	IncludeTasks    bool
	KeepAssignees   bool
}

// Validate rejects flag combinations that cannot produce a consistent copy.
// A task cannot be placed without a destination swim-lane set, so asking for
// tasks without statuses is a caller error, not something to silently fix.
func (f Flags) Validate() error {
	if f.IncludeTasks && !f.IncludeStatuses {
		return ErrTasksRequireStatuses
	}
	return nil
}

// normalized corrects the dependent sub-options that are forced rather than
// rejected: an assignee reference is only meaningful when the memberships are
// carried over, and only when tasks are copied at all.
func (f Flags) normalized() Flags {
	if !f.IncludeUsers || !f.IncludeTasks {
		f.KeepAssignees = false
	}
	return f
}

// Snapshot is a read-only copy of the requested sub-graphs of a source
// project. Collections are nil when their flag was off. Entities keep their
// source identities; translation happens when the snapshot is written.
type Snapshot struct {
	Lanes   []LaneSnapshot
	Roles   []string
	Members []Membership
	Tasks   []TaskSnapshot
}

// LaneSnapshot captures a swim lane together with its source identity,
// which the writer uses as the remapping key.
type LaneSnapshot struct {
	SourceID uuid.UUID
	Name     string
	Order    int
}

// Membership captures a user-role link. The user itself is shared state and
// is never copied, only referenced.
type Membership struct {
	UserID uuid.UUID
	Role   string
}

// TaskSnapshot captures a task with its source lane reference.
type TaskSnapshot struct {
	SourceLaneID uuid.UUID
	Title        string
	Description  string
	AssignedTo   *uuid.UUID
}

// Reader is the read access the extractor needs. Satisfied by *database.Repository.
type Reader interface {
	GetSwimLanesByProject(ctx context.Context, projectID uuid.UUID) ([]*models.SwimLane, error)
	GetUserRolesByProject(ctx context.Context, projectID uuid.UUID) ([]*models.UserRole, error)
	GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
}

// ExtractSnapshot reads the flag-selected sub-graphs of the source project.
// Lanes arrive ordered by position and tasks in creation order; the snapshot
// preserves both. No side effects.
func ExtractSnapshot(ctx context.Context, reader Reader, project *models.Project, flags Flags) (*Snapshot, error) {
	flags = flags.normalized()
	snap := &Snapshot{}

	if flags.IncludeStatuses {
		lanes, err := reader.GetSwimLanesByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read swim lanes: %w", err)
		}
		snap.Lanes = make([]LaneSnapshot, 0, len(lanes))
		for _, lane := range lanes {
			snap.Lanes = append(snap.Lanes, LaneSnapshot{
				SourceID: lane.ID,
				Name:     lane.Name,
				Order:    lane.Order,
			})
		}
	}

	if flags.IncludeRoles {
		snap.Roles = append([]string{}, project.Roles...)
	}

	if flags.IncludeUsers {
		userRoles, err := reader.GetUserRolesByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read user roles: %w", err)
		}
		snap.Members = make([]Membership, 0, len(userRoles))
		for _, ur := range userRoles {
			snap.Members = append(snap.Members, Membership{UserID: ur.UserID, Role: ur.Role})
		}
	}

	if flags.IncludeTasks {
		tasks, err := reader.GetTasksByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read tasks: %w", err)
		}
		snap.Tasks = make([]TaskSnapshot, 0, len(tasks))
		for _, task := range tasks {
			ts := TaskSnapshot{
				SourceLaneID: task.SwimLaneID,
				Title:        task.Title,
				Description:  task.Description,
			}
			if flags.KeepAssignees && task.AssignedTo != nil {
				assignee := *task.AssignedTo
				ts.AssignedTo = &assignee
			}
			snap.Tasks = append(snap.Tasks, ts)
		}
	}

	return snap, nil
}

package clone

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/events"
	"github.com/laneboard/laneboard/internal/models"
)

// Service defines the project-cloning business operations
type Service interface {
	// CloneProject copies the flag-selected structure of a source project
	// into a new project owned by the acting user.
	CloneProject(ctx context.Context, actorID uuid.UUID, req CloneRequest) (*models.Project, error)
}

// CloneRequest encapsulates data for cloning a live project
type CloneRequest struct {
	Name            string
	SourceProjectID uuid.UUID
	Flags
}

// service implements Service on top of the composed repository
type service struct {
	repo     *database.Repository
	eventBus events.Publisher
}

// NewService creates a new clone service
func NewService(repo *database.Repository, eventBus events.Publisher) Service {
	return &service{repo: repo, eventBus: eventBus}
}

// CloneProject validates the request, extracts a snapshot of the source
// project and writes the copy in a single transaction. Either the whole new
// project is persisted or nothing is.
func (s *service) CloneProject(ctx context.Context, actorID uuid.UUID, req CloneRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 255 {
		return nil, ErrNameTooLong
	}
	if err := req.Flags.Validate(); err != nil {
		return nil, err
	}
	flags := req.Flags.normalized()

	source, err := s.repo.GetProjectByID(ctx, req.SourceProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSourceProjectNotFound
		}
		return nil, fmt.Errorf("failed to get source project: %w", err)
	}
	// Ownership doubles as existence from the caller's point of view.
	if source.OwnerID != actorID {
		return nil, ErrSourceProjectNotFound
	}

	snap, err := ExtractSnapshot(ctx, s.repo, source, flags)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback clone transaction", "error", err)
		}
	}()

	repoTx := s.repo.WithTx(tx)

	roles := []string{}
	if flags.IncludeRoles {
		roles = snap.Roles
	}
	project, err := repoTx.CreateProjectRecord(ctx, name, actorID, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := WriteSnapshot(ctx, repoTx, project.ID, actorID, snap, flags.KeepAssignees); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventProjectCloned,
		ProjectID: project.ID,
		ActorID:   actorID,
	})

	return project, nil
}

// Writer is the write access WriteSnapshot needs. Satisfied by
// *database.Repository, which callers bind to their transaction first.
type Writer interface {
	CreateSwimLane(ctx context.Context, projectID uuid.UUID, name string, order int) (*models.SwimLane, error)
	CreateUserRole(ctx context.Context, projectID, userID uuid.UUID, role string) (*models.UserRole, error)
	CreateTask(ctx context.Context, projectID, swimLaneID uuid.UUID, title, description string, assignedTo *uuid.UUID, createdBy uuid.UUID) (*models.Task, error)
}

// WriteSnapshot persists the snapshot's entity set under an already-created
// project: lanes in position order (recording the id mapping), then
// memberships, then tasks with their lane references rewritten through the
// mapping. Tasks are created by the acting user, never the original creator.
// The template service shares this write path when instantiating.
func WriteSnapshot(ctx context.Context, w Writer, projectID, actorID uuid.UUID, snap *Snapshot, keepAssignees bool) error {
	mapping := newLaneMap()
	for _, lane := range snap.Lanes {
		created, err := w.CreateSwimLane(ctx, projectID, lane.Name, lane.Order)
		if err != nil {
			return fmt.Errorf("failed to create swim lane '%s': %w", lane.Name, err)
		}
		mapping.record(lane.SourceID, created.ID)
	}

	// Role-name strings are copied as-is even when the new project's role
	// list does not contain them; memberships are not re-validated here.
	for _, member := range snap.Members {
		if _, err := w.CreateUserRole(ctx, projectID, member.UserID, member.Role); err != nil {
			return fmt.Errorf("failed to create user role: %w", err)
		}
	}

	for _, task := range snap.Tasks {
		laneID, err := mapping.lookup(task.SourceLaneID)
		if err != nil {
			return err
		}
		var assignedTo *uuid.UUID
		if keepAssignees {
			assignedTo = task.AssignedTo
		}
		if _, err := w.CreateTask(ctx, projectID, laneID, task.Title, task.Description, assignedTo, actorID); err != nil {
			return fmt.Errorf("failed to create task '%s': %w", task.Title, err)
		}
	}

	return nil
}

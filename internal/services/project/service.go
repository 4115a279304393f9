package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/events"
	"github.com/laneboard/laneboard/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetProject(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error)
	GetProjects(ctx context.Context, actorID uuid.UUID) ([]*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error
}

// CreateRequest encapsulates data for creating a project
type CreateRequest struct {
	Name string
}

// UpdateRequest encapsulates data for updating a project.
// Nil fields are left unchanged.
type UpdateRequest struct {
	ID    uuid.UUID
	Name  *string
	Roles []string
}

type service struct {
	repo     *database.Repository
	eventBus events.Publisher
}

// NewService creates a new project service
func NewService(repo *database.Repository, eventBus events.Publisher) Service {
	return &service{repo: repo, eventBus: eventBus}
}

// GetProject retrieves a project the actor owns.
func (s *service) GetProject(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error) {
	return s.getOwnedProject(ctx, actorID, projectID)
}

// GetProjects retrieves all projects owned by the actor, newest first.
func (s *service) GetProjects(ctx context.Context, actorID uuid.UUID) ([]*models.Project, error) {
	return s.repo.GetProjectsByOwner(ctx, actorID)
}

// CreateProject creates a new project owned by the actor.
func (s *service) CreateProject(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 255 {
		return nil, ErrNameTooLong
	}

	project, err := s.repo.CreateProjectRecord(ctx, name, actorID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventProjectCreated,
		ProjectID: project.ID,
		ActorID:   actorID,
	})

	return project, nil
}

// UpdateProject updates the name and role list of a project the actor owns.
func (s *service) UpdateProject(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.Project, error) {
	existing, err := s.getOwnedProject(ctx, actorID, req.ID)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if len(name) > 255 {
			return nil, ErrNameTooLong
		}
	}

	roles := existing.Roles
	if req.Roles != nil {
		roles = req.Roles
	}

	if err := s.repo.UpdateProject(ctx, req.ID, name, roles); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventProjectUpdated,
		ProjectID: req.ID,
		ActorID:   actorID,
	})

	return s.repo.GetProjectByID(ctx, req.ID)
}

// DeleteProject soft-deletes a project the actor owns. Lanes, tasks and
// memberships disappear with it through the project-scoped read filters.
func (s *service) DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error {
	if _, err := s.getOwnedProject(ctx, actorID, projectID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventProjectDeleted,
		ProjectID: projectID,
		ActorID:   actorID,
	})

	return nil
}

func (s *service) getOwnedProject(ctx context.Context, actorID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.OwnerID != actorID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

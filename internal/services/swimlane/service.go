package swimlane

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

// Service defines all swim-lane-related business operations
type Service interface {
	GetSwimLanes(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.SwimLane, error)
	CreateSwimLane(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.SwimLane, error)
	UpdateSwimLane(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.SwimLane, error)
	DeleteSwimLane(ctx context.Context, actorID, swimLaneID uuid.UUID) error
}

// CreateRequest encapsulates data for creating a swim lane
type CreateRequest struct {
	ProjectID uuid.UUID
	Name      string
	Order     int
}

// UpdateRequest encapsulates data for updating a swim lane.
// Nil fields are left unchanged.
type UpdateRequest struct {
	ID    uuid.UUID
	Name  *string
	Order *int
}

type service struct {
	repo     *database.Repository
	eventBus events.Publisher
}

// NewService creates a new swim lane service
func NewService(repo *database.Repository, eventBus events.Publisher) Service {
	return &service{repo: repo, eventBus: eventBus}
}

// GetSwimLanes retrieves the lanes of a project the actor owns, in position order.
func (s *service) GetSwimLanes(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.SwimLane, error) {
	if err := s.verifyProjectOwnership(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetSwimLanesByProject(ctx, projectID)
}

// CreateSwimLane creates a lane in a project the actor owns.
func (s *service) CreateSwimLane(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.SwimLane, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := s.verifyProjectOwnership(ctx, actorID, req.ProjectID); err != nil {
		return nil, err
	}

	lane, err := s.repo.CreateSwimLane(ctx, req.ProjectID, name, req.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to create swim lane: %w", err)
	}

	s.publishBoardChanged(req.ProjectID, actorID)
	return lane, nil
}

// UpdateSwimLane updates a lane in a project the actor owns.
func (s *service) UpdateSwimLane(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.SwimLane, error) {
	lane, err := s.getAccessibleLane(ctx, actorID, req.ID)
	if err != nil {
		return nil, err
	}

	name := lane.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
	}
	order := lane.Order
	if req.Order != nil {
		order = *req.Order
	}

	if err := s.repo.UpdateSwimLane(ctx, req.ID, name, order); err != nil {
		return nil, fmt.Errorf("failed to update swim lane: %w", err)
	}

	s.publishBoardChanged(lane.ProjectID, actorID)
	return s.repo.GetSwimLaneByID(ctx, req.ID)
}

// DeleteSwimLane soft-deletes a lane in a project the actor owns.
func (s *service) DeleteSwimLane(ctx context.Context, actorID, swimLaneID uuid.UUID) error {
	lane, err := s.getAccessibleLane(ctx, actorID, swimLaneID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteSwimLane(ctx, swimLaneID); err != nil {
		return fmt.Errorf("failed to delete swim lane: %w", err)
	}

	s.publishBoardChanged(lane.ProjectID, actorID)
	return nil
}

func (s *service) getAccessibleLane(ctx context.Context, actorID, swimLaneID uuid.UUID) (*models.SwimLane, error) {
	lane, err := s.repo.GetSwimLaneByID(ctx, swimLaneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwimLaneNotFound
		}
		return nil, fmt.Errorf("failed to get swim lane: %w", err)
	}
	if err := s.verifyProjectOwnership(ctx, actorID, lane.ProjectID); err != nil {
		return nil, err
	}
	return lane, nil
}

func (s *service) verifyProjectOwnership(ctx context.Context, actorID, projectID uuid.UUID) error {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project.OwnerID != actorID {
		return ErrProjectNotFound
	}
	return nil
}

func (s *service) publishBoardChanged(projectID, actorID uuid.UUID) {
	events.Publish(s.eventBus, events.Event{
		Type:      events.EventBoardChanged,
		ProjectID: projectID,
		ActorID:   actorID,
	})
}

package task

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

// Service defines all task-related business operations
type Service interface {
	GetProjectTasks(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.Task, error)
	CreateTask(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error
}

// CreateRequest encapsulates data for creating a task
type CreateRequest struct {
	ProjectID   uuid.UUID
	SwimLaneID  uuid.UUID
	Title       string
	Description string
	AssignedTo  *uuid.UUID
}

// UpdateRequest encapsulates data for updating a task.
// Nil fields are left unchanged; ClearAssignee removes the assignee.
type UpdateRequest struct {
	ID            uuid.UUID
	SwimLaneID    *uuid.UUID
	Title         *string
	Description   *string
	AssignedTo    *uuid.UUID
	ClearAssignee bool
}

type service struct {
	repo     *database.Repository
	eventBus events.Publisher
}

// NewService creates a new task service
func NewService(repo *database.Repository, eventBus events.Publisher) Service {
	return &service{repo: repo, eventBus: eventBus}
}

// GetProjectTasks retrieves the tasks of a project the actor owns, in creation order.
func (s *service) GetProjectTasks(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.Task, error) {
	if err := s.verifyProjectOwnership(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetTasksByProject(ctx, projectID)
}

// CreateTask creates a task in a swim lane of a project the actor owns.
func (s *service) CreateTask(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := s.verifyProjectOwnership(ctx, actorID, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.verifyLaneInProject(ctx, req.SwimLaneID, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.verifyAssignee(ctx, req.AssignedTo); err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, req.ProjectID, req.SwimLaneID, title, req.Description, req.AssignedTo, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishBoardChanged(req.ProjectID, actorID)
	return task, nil
}

// UpdateTask updates a task in a project the actor owns. A lane move is
// validated against the task's own project.
func (s *service) UpdateTask(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.Task, error) {
	task, err := s.getAccessibleTask(ctx, actorID, req.ID)
	if err != nil {
		return nil, err
	}

	laneID := task.SwimLaneID
	if req.SwimLaneID != nil {
		if err := s.verifyLaneInProject(ctx, *req.SwimLaneID, task.ProjectID); err != nil {
			return nil, err
		}
		laneID = *req.SwimLaneID
	}

	title := task.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
	}

	description := task.Description
	if req.Description != nil {
		description = *req.Description
	}

	assignedTo := task.AssignedTo
	if req.ClearAssignee {
		assignedTo = nil
	} else if req.AssignedTo != nil {
		if err := s.verifyAssignee(ctx, req.AssignedTo); err != nil {
			return nil, err
		}
		assignedTo = req.AssignedTo
	}

	if err := s.repo.UpdateTask(ctx, req.ID, laneID, title, description, assignedTo); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishBoardChanged(task.ProjectID, actorID)
	return s.repo.GetTaskByID(ctx, req.ID)
}

// DeleteTask soft-deletes a task in a project the actor owns.
func (s *service) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	task, err := s.getAccessibleTask(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishBoardChanged(task.ProjectID, actorID)
	return nil
}

func (s *service) getAccessibleTask(ctx context.Context, actorID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.verifyProjectOwnership(ctx, actorID, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
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

func (s *service) verifyLaneInProject(ctx context.Context, swimLaneID, projectID uuid.UUID) error {
	lane, err := s.repo.GetSwimLaneByID(ctx, swimLaneID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSwimLaneNotFound
		}
		return fmt.Errorf("failed to get swim lane: %w", err)
	}
	if lane.ProjectID != projectID {
		return ErrSwimLaneNotFound
	}
	return nil
}

func (s *service) verifyAssignee(ctx context.Context, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.repo.GetUserByID(ctx, *assigneeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to get assignee: %w", err)
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

package userrole

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/models"
)

// Service defines all project-membership business operations
type Service interface {
	GetProjectUserRoles(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.UserRoleWithUser, error)
	CreateUserRole(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.UserRole, error)
	UpdateUserRole(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.UserRole, error)
	DeleteUserRole(ctx context.Context, actorID, projectID, userRoleID uuid.UUID) error
}

// CreateRequest encapsulates data for creating a membership
type CreateRequest struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      string
}

// UpdateRequest encapsulates data for changing a membership's role
type UpdateRequest struct {
	ProjectID  uuid.UUID
	UserRoleID uuid.UUID
	Role       string
}

type service struct {
	repo *database.Repository
}

// NewService creates a new membership service
func NewService(repo *database.Repository) Service {
	return &service{repo: repo}
}

// GetProjectUserRoles retrieves the memberships of a project the actor owns,
// joined with user details.
func (s *service) GetProjectUserRoles(ctx context.Context, actorID, projectID uuid.UUID) ([]*models.UserRoleWithUser, error) {
	if _, err := s.getOwnedProject(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.repo.GetUserRolesWithUsers(ctx, projectID)
}

// CreateUserRole adds a user to a project the actor owns. The role must be one
// of the project's role strings, the user must exist, and the combination must
// not already be present.
func (s *service) CreateUserRole(ctx context.Context, actorID uuid.UUID, req CreateRequest) (*models.UserRole, error) {
	project, err := s.getOwnedProject(ctx, actorID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if len(project.Roles) > 0 && !slices.Contains(project.Roles, req.Role) {
		return nil, ErrRoleNotDefined
	}

	if _, err := s.repo.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	exists, err := s.repo.UserRoleExists(ctx, req.ProjectID, req.UserID, req.Role)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRole
	}

	userRole, err := s.repo.CreateUserRole(ctx, req.ProjectID, req.UserID, req.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user role: %w", err)
	}
	return userRole, nil
}

// UpdateUserRole changes the role of a membership in a project the actor owns.
func (s *service) UpdateUserRole(ctx context.Context, actorID uuid.UUID, req UpdateRequest) (*models.UserRole, error) {
	project, err := s.getOwnedProject(ctx, actorID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	userRole, err := s.getProjectUserRole(ctx, req.ProjectID, req.UserRoleID)
	if err != nil {
		return nil, err
	}

	if len(project.Roles) > 0 && !slices.Contains(project.Roles, req.Role) {
		return nil, ErrRoleNotDefined
	}

	exists, err := s.repo.UserRoleExists(ctx, req.ProjectID, userRole.UserID, req.Role)
	if err != nil {
		return nil, err
	}
	if exists && userRole.Role != req.Role {
		return nil, ErrDuplicateRole
	}

	if err := s.repo.UpdateUserRoleRole(ctx, req.UserRoleID, req.Role); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return s.repo.GetUserRoleByID(ctx, req.UserRoleID)
}

// DeleteUserRole soft-deletes a membership in a project the actor owns.
func (s *service) DeleteUserRole(ctx context.Context, actorID, projectID, userRoleID uuid.UUID) error {
	if _, err := s.getOwnedProject(ctx, actorID, projectID); err != nil {
		return err
	}
	if _, err := s.getProjectUserRole(ctx, projectID, userRoleID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteUserRole(ctx, userRoleID); err != nil {
		return fmt.Errorf("failed to delete user role: %w", err)
	}
	return nil
}

func (s *service) getProjectUserRole(ctx context.Context, projectID, userRoleID uuid.UUID) (*models.UserRole, error) {
	userRole, err := s.repo.GetUserRoleByID(ctx, userRoleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserRoleNotFound
		}
		return nil, fmt.Errorf("failed to get user role: %w", err)
	}
	if userRole.ProjectID != projectID {
		return nil, ErrUserRoleNotFound
	}
	return userRole, nil
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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// UserRoleRepo handles all project-membership database operations.
type UserRoleRepo struct {
	db dbtx
}

// CreateUserRole inserts a membership row and returns the stored row.
func (r *UserRoleRepo) CreateUserRole(ctx context.Context, projectID, userID uuid.UUID, role string) (*models.UserRole, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_user_roles (id, project_id, user_id, role) VALUES (?, ?, ?, ?)`,
		id, projectID, userID, role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user role: %w", err)
	}
	return r.GetUserRoleByID(ctx, id)
}

// GetUserRoleByID retrieves a non-deleted membership by its ID.
func (r *UserRoleRepo) GetUserRoleByID(ctx context.Context, id uuid.UUID) (*models.UserRole, error) {
	ur := &models.UserRole{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, user_id, role, created_at, updated_at FROM project_user_roles
		 WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&ur.ID, &ur.ProjectID, &ur.UserID, &ur.Role, &ur.CreatedAt, &ur.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user role %s: %w", id, err)
	}
	return ur, nil
}

// GetUserRolesByProject retrieves all memberships of a project.
func (r *UserRoleRepo) GetUserRolesByProject(ctx context.Context, projectID uuid.UUID) ([]*models.UserRole, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, user_id, role, created_at, updated_at FROM project_user_roles
		 WHERE project_id = ? AND deleted_at IS NULL ORDER BY created_at ASC, rowid ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles of project %s: %w", projectID, err)
	}
	defer closeRows(rows)

	var userRoles []*models.UserRole
	for rows.Next() {
		ur := &models.UserRole{}
		if err := rows.Scan(&ur.ID, &ur.ProjectID, &ur.UserID, &ur.Role, &ur.CreatedAt, &ur.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user role row: %w", err)
		}
		userRoles = append(userRoles, ur)
	}
	return userRoles, rows.Err()
}

// GetUserRolesWithUsers retrieves the memberships of a project joined with
// the users' synced details, for the member list view.
func (r *UserRoleRepo) GetUserRolesWithUsers(ctx context.Context, projectID uuid.UUID) ([]*models.UserRoleWithUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ur.id, ur.project_id, ur.user_id, ur.role, ur.created_at, ur.updated_at,
		        u.id, u.external_id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
		 FROM project_user_roles ur
		 JOIN users u ON ur.user_id = u.id
		 WHERE ur.project_id = ? AND ur.deleted_at IS NULL
		 ORDER BY ur.created_at ASC, ur.rowid ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles with users of project %s: %w", projectID, err)
	}
	defer closeRows(rows)

	var result []*models.UserRoleWithUser
	for rows.Next() {
		entry := &models.UserRoleWithUser{}
		if err := rows.Scan(
			&entry.UserRole.ID, &entry.UserRole.ProjectID, &entry.UserRole.UserID, &entry.UserRole.Role,
			&entry.UserRole.CreatedAt, &entry.UserRole.UpdatedAt,
			&entry.User.ID, &entry.User.ExternalID, &entry.User.Email, &entry.User.FirstName, &entry.User.LastName,
			&entry.User.CreatedAt, &entry.User.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user role row: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// UserRoleExists reports whether the (project, user, role) combination already
// has a live membership row.
func (r *UserRoleRepo) UserRoleExists(ctx context.Context, projectID, userID uuid.UUID, role string) (bool, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM project_user_roles
		 WHERE project_id = ? AND user_id = ? AND role = ? AND deleted_at IS NULL`,
		projectID, userID, role,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user role existence: %w", err)
	}
	return true, nil
}

// UpdateUserRoleRole changes the role label of a membership.
func (r *UserRoleRepo) UpdateUserRoleRole(ctx context.Context, id uuid.UUID, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE project_user_roles SET role = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		role, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user role %s: %w", id, err)
	}
	return nil
}

// SoftDeleteUserRole marks a membership as deleted.
func (r *UserRoleRepo) SoftDeleteUserRole(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE project_user_roles SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user role %s: %w", id, err)
	}
	return nil
}

package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db dbtx
}

// CreateProjectRecord inserts a project row (no lanes, roles as given).
func (r *ProjectRepo) CreateProjectRecord(ctx context.Context, name string, ownerID uuid.UUID, roles []string) (*models.Project, error) {
	id := uuid.New()
	rolesJSON, err := rolesToJSON(roles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roles for project '%s': %w", name, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, owner_id, roles) VALUES (?, ?, ?, ?)`,
		id, name, ownerID, rolesJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", name, err)
	}
	return r.GetProjectByID(ctx, id)
}

// GetProjectByID retrieves a non-deleted project by its ID.
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	var rolesJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, roles, created_at, updated_at FROM projects WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&project.ID, &project.Name, &project.OwnerID, &rolesJSON, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	if project.Roles, err = rolesFromJSON(rolesJSON); err != nil {
		return nil, fmt.Errorf("failed to decode roles of project %s: %w", id, err)
	}
	return project, nil
}

// GetProjectsByOwner retrieves all projects owned by a user, newest first.
func (r *ProjectRepo) GetProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, owner_id, roles, created_at, updated_at FROM projects
		 WHERE owner_id = ? AND deleted_at IS NULL ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects of owner %s: %w", ownerID, err)
	}
	defer closeRows(rows)

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		var rolesJSON string
		if err := rows.Scan(&project.ID, &project.Name, &project.OwnerID, &rolesJSON, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		if project.Roles, err = rolesFromJSON(rolesJSON); err != nil {
			return nil, fmt.Errorf("failed to decode roles of project %s: %w", project.ID, err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject updates the name and role list of a project.
func (r *ProjectRepo) UpdateProject(ctx context.Context, id uuid.UUID, name string, roles []string) error {
	rolesJSON, err := rolesToJSON(roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles for project %s: %w", id, err)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, roles = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		name, rolesJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return nil
}

// SoftDeleteProject marks a project as deleted.
func (r *ProjectRepo) SoftDeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

func rolesToJSON(roles []string) (string, error) {
	if roles == nil {
		roles = []string{}
	}
	data, err := json.Marshal(roles)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func rolesFromJSON(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var roles []string
	if err := json.Unmarshal([]byte(data), &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

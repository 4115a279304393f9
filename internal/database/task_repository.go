package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db dbtx
}

// CreateTask inserts a task and returns the stored row.
func (r *TaskRepo) CreateTask(ctx context.Context, projectID, swimLaneID uuid.UUID, title, description string, assignedTo *uuid.UUID, createdBy uuid.UUID) (*models.Task, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, swim_lane_id, title, description, assigned_to, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, projectID, swimLaneID, title, description, nullableUUID(assignedTo), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task '%s': %w", title, err)
	}
	return r.GetTaskByID(ctx, id)
}

// GetTaskByID retrieves a non-deleted task by its ID.
func (r *TaskRepo) GetTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	var assignedTo uuid.NullUUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, swim_lane_id, title, description, assigned_to, created_by, created_at, updated_at
		 FROM tasks WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&task.ID, &task.ProjectID, &task.SwimLaneID, &task.Title, &task.Description, &assignedTo, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	if assignedTo.Valid {
		task.AssignedTo = &assignedTo.UUID
	}
	return task, nil
}

// GetTasksByProject retrieves the tasks of a project in creation order.
// rowid breaks created_at ties so the ordering is stable.
func (r *TaskRepo) GetTasksByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, swim_lane_id, title, description, assigned_to, created_by, created_at, updated_at
		 FROM tasks WHERE project_id = ? AND deleted_at IS NULL
		 ORDER BY created_at ASC, rowid ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks of project %s: %w", projectID, err)
	}
	defer closeRows(rows)

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		var assignedTo uuid.NullUUID
		if err := rows.Scan(&task.ID, &task.ProjectID, &task.SwimLaneID, &task.Title, &task.Description, &assignedTo, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		if assignedTo.Valid {
			task.AssignedTo = &assignedTo.UUID
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask overwrites the mutable fields of a task.
func (r *TaskRepo) UpdateTask(ctx context.Context, id, swimLaneID uuid.UUID, title, description string, assignedTo *uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET swim_lane_id = ?, title = ?, description = ?, assigned_to = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		swimLaneID, title, description, nullableUUID(assignedTo), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

// SoftDeleteTask marks a task as deleted.
func (r *TaskRepo) SoftDeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// nullableUUID converts an optional UUID to a driver-friendly value.
func nullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

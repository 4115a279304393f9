package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// SwimLaneRepo handles all swim-lane-related database operations.
type SwimLaneRepo struct {
	db dbtx
}

// CreateSwimLane inserts a swim lane and returns the stored row.
func (r *SwimLaneRepo) CreateSwimLane(ctx context.Context, projectID uuid.UUID, name string, order int) (*models.SwimLane, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO swim_lanes (id, project_id, name, lane_order) VALUES (?, ?, ?, ?)`,
		id, projectID, name, order,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert swim lane '%s': %w", name, err)
	}
	return r.GetSwimLaneByID(ctx, id)
}

// GetSwimLaneByID retrieves a non-deleted swim lane by its ID.
func (r *SwimLaneRepo) GetSwimLaneByID(ctx context.Context, id uuid.UUID) (*models.SwimLane, error) {
	lane := &models.SwimLane{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, lane_order, created_at, updated_at FROM swim_lanes
		 WHERE id = ? AND deleted_at IS NULL`,
		id,
	).Scan(&lane.ID, &lane.ProjectID, &lane.Name, &lane.Order, &lane.CreatedAt, &lane.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get swim lane %s: %w", id, err)
	}
	return lane, nil
}

// GetSwimLanesByProject retrieves the lanes of a project ordered by position.
// The explicit sort key keeps board rendering and cloning deterministic.
func (r *SwimLaneRepo) GetSwimLanesByProject(ctx context.Context, projectID uuid.UUID) ([]*models.SwimLane, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, lane_order, created_at, updated_at FROM swim_lanes
		 WHERE project_id = ? AND deleted_at IS NULL ORDER BY lane_order ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query swim lanes of project %s: %w", projectID, err)
	}
	defer closeRows(rows)

	var lanes []*models.SwimLane
	for rows.Next() {
		lane := &models.SwimLane{}
		if err := rows.Scan(&lane.ID, &lane.ProjectID, &lane.Name, &lane.Order, &lane.CreatedAt, &lane.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swim lane row: %w", err)
		}
		lanes = append(lanes, lane)
	}
	return lanes, rows.Err()
}

// UpdateSwimLane updates the name and position of a swim lane.
func (r *SwimLaneRepo) UpdateSwimLane(ctx context.Context, id uuid.UUID, name string, order int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE swim_lanes SET name = ?, lane_order = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		name, order, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update swim lane %s: %w", id, err)
	}
	return nil
}

// SoftDeleteSwimLane marks a swim lane as deleted.
func (r *SwimLaneRepo) SoftDeleteSwimLane(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE swim_lanes SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete swim lane %s: %w", id, err)
	}
	return nil
}

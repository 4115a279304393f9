package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// TemplateRepo handles all template-related database operations.
// The nested snapshot collections are stored as JSON text columns; a NULL
// column means the corresponding inclusion flag was off at save time.
type TemplateRepo struct {
	db dbtx
}

// CreateTemplate inserts a template row and returns the stored row.
func (r *TemplateRepo) CreateTemplate(ctx context.Context, tmpl *models.Template) (*models.Template, error) {
	id := uuid.New()
	statuses, err := marshalOptional(tmpl.Statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template statuses: %w", err)
	}
	roles, err := marshalOptional(tmpl.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template roles: %w", err)
	}
	users, err := marshalOptional(tmpl.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template users: %w", err)
	}
	tasks, err := marshalOptional(tmpl.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template tasks: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO project_templates (id, name, description, owner_id, statuses, roles, users, tasks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, tmpl.Name, tmpl.Description, tmpl.OwnerID, statuses, roles, users, tasks,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert template '%s': %w", tmpl.Name, err)
	}
	return r.GetTemplateByID(ctx, id)
}

// GetTemplateByID retrieves a non-deleted template by its ID.
func (r *TemplateRepo) GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, owner_id, statuses, roles, users, tasks, created_at
		 FROM project_templates WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	tmpl, err := scanTemplate(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	return tmpl, nil
}

// GetTemplatesByOwner retrieves all templates owned by a user, newest first.
func (r *TemplateRepo) GetTemplatesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Template, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, owner_id, statuses, roles, users, tasks, created_at
		 FROM project_templates WHERE owner_id = ? AND deleted_at IS NULL
		 ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates of owner %s: %w", ownerID, err)
	}
	defer closeRows(rows)

	var templates []*models.Template
	for rows.Next() {
		tmpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

// SoftDeleteTemplate marks a template as deleted.
func (r *TemplateRepo) SoftDeleteTemplate(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE project_templates SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	return nil
}

func scanTemplate(scan func(...any) error) (*models.Template, error) {
	tmpl := &models.Template{}
	var statuses, roles, users, tasks sql.NullString
	if err := scan(&tmpl.ID, &tmpl.Name, &tmpl.Description, &tmpl.OwnerID, &statuses, &roles, &users, &tasks, &tmpl.CreatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalOptional(statuses, &tmpl.Statuses); err != nil {
		return nil, err
	}
	if err := unmarshalOptional(roles, &tmpl.Roles); err != nil {
		return nil, err
	}
	if err := unmarshalOptional(users, &tmpl.Users); err != nil {
		return nil, err
	}
	if err := unmarshalOptional(tasks, &tmpl.Tasks); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// marshalOptional encodes a snapshot collection, mapping a nil slice to SQL NULL
// so absent-because-excluded survives a round trip.
func marshalOptional(v any) (any, error) {
	switch s := v.(type) {
	case []models.TemplateStatus:
		if s == nil {
			return nil, nil
		}
	case []models.TemplateUser:
		if s == nil {
			return nil, nil
		}
	case []models.TemplateTask:
		if s == nil {
			return nil, nil
		}
	case []string:
		if s == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalOptional(col sql.NullString, dst any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}

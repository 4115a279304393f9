package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// UserRepo handles all user-related database operations.
// Users are owned by the external auth provider; rows here are the synced copies.
type UserRepo struct {
	db dbtx
}

// CreateUser inserts a synced user and returns the stored row.
func (r *UserRepo) CreateUser(ctx context.Context, externalID, email, firstName, lastName string) (*models.User, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, external_id, email, first_name, last_name) VALUES (?, ?, ?, ?, ?)`,
		id, externalID, email, firstName, lastName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user '%s': %w", externalID, err)
	}
	return r.GetUserByID(ctx, id)
}

// UpdateUser overwrites the synced profile fields of an existing user.
func (r *UserRepo) UpdateUser(ctx context.Context, id uuid.UUID, email, firstName, lastName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		email, firstName, lastName, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return nil
}

// GetUserByID retrieves a non-deleted user by its ID.
func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, `WHERE id = ? AND deleted_at IS NULL`, id)
}

// GetUserByExternalID retrieves a user by its external auth identity.
func (r *UserRepo) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return r.getUser(ctx, `WHERE external_id = ? AND deleted_at IS NULL`, externalID)
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `WHERE email = ? AND deleted_at IS NULL`, email)
}

func (r *UserRepo) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, external_id, email, first_name, last_name, created_at, updated_at FROM users `+where,
		arg,
	).Scan(&user.ID, &user.ExternalID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

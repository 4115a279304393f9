package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/models"
)

// Service defines the auth-sync operations. Users originate in the external
// auth provider; this service only mirrors them.
type Service interface {
	// Sync upserts a user from provider sign-up data, keyed by external id.
	Sync(ctx context.Context, req SyncRequest) (*models.User, error)

	// GetByExternalID looks up a synced user by its provider identity.
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// SyncRequest encapsulates provider sign-up data
type SyncRequest struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}

type service struct {
	repo *database.Repository
}

// NewService creates a new user sync service
func NewService(repo *database.Repository) Service {
	return &service{repo: repo}
}

// Sync updates the user with the given external id, or creates it. A new
// user whose email is already taken by a different account is rejected;
// the provider should prevent this, but the core does not trust it to.
func (s *service) Sync(ctx context.Context, req SyncRequest) (*models.User, error) {
	if req.ExternalID == "" {
		return nil, ErrEmptyExternalID
	}
	if req.Email == "" {
		return nil, ErrEmptyEmail
	}

	existing, err := s.repo.GetUserByExternalID(ctx, req.ExternalID)
	if err == nil {
		if err := s.repo.UpdateUser(ctx, existing.ID, req.Email, req.FirstName, req.LastName); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return s.repo.GetUserByID(ctx, existing.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	created, err := s.repo.CreateUser(ctx, req.ExternalID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetByExternalID retrieves a synced user by provider identity.
func (s *service) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.repo.GetUserByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laneboard/laneboard/internal/testutil"
)

func TestSync_CreatesAndUpdates(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Sync(ctx, SyncRequest{
		ExternalID: "clerk-123",
		Email:      "alice@example.com",
		FirstName:  "Alice",
		LastName:   "Ames",
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk-123", created.ExternalID)
	assert.Equal(t, "alice@example.com", created.Email)

	// Re-sync with new details is an update, not a second account
	updated, err := svc.Sync(ctx, SyncRequest{
		ExternalID: "clerk-123",
		Email:      "alice.ames@example.com",
		FirstName:  "Alice",
		LastName:   "Ames",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alice.ames@example.com", updated.Email)
}

func TestSync_Validation(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Sync(ctx, SyncRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrEmptyExternalID)

	_, err = svc.Sync(ctx, SyncRequest{ExternalID: "clerk-1"})
	assert.ErrorIs(t, err, ErrEmptyEmail)

	_, err = svc.Sync(ctx, SyncRequest{ExternalID: "clerk-1", Email: "taken@example.com"})
	require.NoError(t, err)
	_, err = svc.Sync(ctx, SyncRequest{ExternalID: "clerk-2", Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetByExternalID(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.GetByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	synced, err := svc.Sync(ctx, SyncRequest{ExternalID: "clerk-9", Email: "bob@example.com"})
	require.NoError(t, err)

	found, err := svc.GetByExternalID(ctx, "clerk-9")
	require.NoError(t, err)
	assert.Equal(t, synced.ID, found.ID)
}

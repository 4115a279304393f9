package swimlane

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laneboard/laneboard/internal/testutil"
)

func TestSwimLaneLifecycle(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)

	todo, err := svc.CreateSwimLane(ctx, owner.ID, CreateRequest{ProjectID: project.ID, Name: "To Do", Order: 0})
	require.NoError(t, err)
	done, err := svc.CreateSwimLane(ctx, owner.ID, CreateRequest{ProjectID: project.ID, Name: "Done", Order: 1})
	require.NoError(t, err)

	lanes, err := svc.GetSwimLanes(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 2)
	assert.Equal(t, todo.ID, lanes[0].ID)
	assert.Equal(t, done.ID, lanes[1].ID)

	// Reorder pushes the lane to the front of the listing
	order := -1
	_, err = svc.UpdateSwimLane(ctx, owner.ID, UpdateRequest{ID: done.ID, Order: &order})
	require.NoError(t, err)
	lanes, err = svc.GetSwimLanes(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, lanes[0].ID)

	require.NoError(t, svc.DeleteSwimLane(ctx, owner.ID, todo.ID))
	lanes, err = svc.GetSwimLanes(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Len(t, lanes, 1)
}

func TestSwimLane_OwnershipAndValidation(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	stranger := testutil.CreateTestUser(t, repo, "bob")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)
	lane := testutil.CreateTestSwimLane(t, repo, project.ID, "To Do", 0)

	_, err := svc.CreateSwimLane(ctx, owner.ID, CreateRequest{ProjectID: project.ID, Name: "  "})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.CreateSwimLane(ctx, stranger.ID, CreateRequest{ProjectID: project.ID, Name: "Sneaky"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.GetSwimLanes(ctx, stranger.ID, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.ErrorIs(t, svc.DeleteSwimLane(ctx, stranger.ID, lane.ID), ErrProjectNotFound)
	assert.ErrorIs(t, svc.DeleteSwimLane(ctx, owner.ID, uuid.New()), ErrSwimLaneNotFound)
}

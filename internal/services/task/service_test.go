package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laneboard/laneboard/internal/testutil"
)

func TestTaskLifecycle(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	assignee := testutil.CreateTestUser(t, repo, "bob")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)
	todo := testutil.CreateTestSwimLane(t, repo, project.ID, "To Do", 0)
	done := testutil.CreateTestSwimLane(t, repo, project.ID, "Done", 1)

	created, err := svc.CreateTask(ctx, owner.ID, CreateRequest{
		ProjectID:   project.ID,
		SwimLaneID:  todo.ID,
		Title:       "  Ship it  ",
		Description: "the big one",
		AssignedTo:  &assignee.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ship it", created.Title)
	assert.Equal(t, owner.ID, created.CreatedBy)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, assignee.ID, *created.AssignedTo)

	// Move to another lane and clear the assignee
	updated, err := svc.UpdateTask(ctx, owner.ID, UpdateRequest{
		ID:            created.ID,
		SwimLaneID:    &done.ID,
		ClearAssignee: true,
	})
	require.NoError(t, err)
	assert.Equal(t, done.ID, updated.SwimLaneID)
	assert.Nil(t, updated.AssignedTo)
	assert.Equal(t, "Ship it", updated.Title)

	tasks, err := svc.GetProjectTasks(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, svc.DeleteTask(ctx, owner.ID, created.ID))
	tasks, err = svc.GetProjectTasks(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTask_Validation(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)
	other := testutil.CreateTestProject(t, repo, owner.ID, "Other", nil)
	lane := testutil.CreateTestSwimLane(t, repo, project.ID, "To Do", 0)

	_, err := svc.CreateTask(ctx, owner.ID, CreateRequest{ProjectID: project.ID, SwimLaneID: lane.ID, Title: " "})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	// Lane must belong to the named project
	_, err = svc.CreateTask(ctx, owner.ID, CreateRequest{ProjectID: other.ID, SwimLaneID: lane.ID, Title: "Misfiled"})
	assert.ErrorIs(t, err, ErrSwimLaneNotFound)

	ghost := uuid.New()
	_, err = svc.CreateTask(ctx, owner.ID, CreateRequest{
		ProjectID:  project.ID,
		SwimLaneID: lane.ID,
		Title:      "Unassignable",
		AssignedTo: &ghost,
	})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)
}

func TestTask_OwnershipGates(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	stranger := testutil.CreateTestUser(t, repo, "bob")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)
	lane := testutil.CreateTestSwimLane(t, repo, project.ID, "To Do", 0)
	task := testutil.CreateTestTask(t, repo, project.ID, lane.ID, "Secret", nil, owner.ID)

	_, err := svc.GetProjectTasks(ctx, stranger.ID, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.UpdateTask(ctx, stranger.ID, UpdateRequest{ID: task.ID})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, stranger.ID, task.ID), ErrProjectNotFound)
	assert.ErrorIs(t, svc.DeleteTask(ctx, owner.ID, uuid.New()), ErrTaskNotFound)
}

func TestGetProjectTasks_CreationOrder(t *testing.T) {
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, repo, "alice")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Board", nil)
	lane := testutil.CreateTestSwimLane(t, repo, project.ID, "To Do", 0)

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		testutil.CreateTestTask(t, repo, project.ID, lane.ID, title, nil, owner.ID)
	}

	tasks, err := svc.GetProjectTasks(ctx, owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, tasks[i].Title)
	}
}

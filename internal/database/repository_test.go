package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laneboard/laneboard/internal/models"
)

// Tests here open their own in-memory database; testutil depends on this
// package and cannot be imported back.
func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return NewRepository(db)
}

func seedUser(t *testing.T, repo *Repository, name string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), "ext-"+name, name+"@example.com", name, "Test")
	require.NoError(t, err)
	return user
}

func TestProjectRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")

	created, err := repo.CreateProjectRecord(ctx, "Roadmap", owner.ID, []string{"lead", "dev"})
	require.NoError(t, err)

	fetched, err := repo.GetProjectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", fetched.Name)
	assert.Equal(t, owner.ID, fetched.OwnerID)
	assert.Equal(t, []string{"lead", "dev"}, fetched.Roles)

	// Soft delete hides the row from every read path
	require.NoError(t, repo.SoftDeleteProject(ctx, created.ID))
	_, err = repo.GetProjectByID(ctx, created.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	projects, err := repo.GetProjectsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestSwimLaneOrdering(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")
	project, err := repo.CreateProjectRecord(ctx, "Board", owner.ID, nil)
	require.NoError(t, err)

	// Created out of order on purpose
	_, err = repo.CreateSwimLane(ctx, project.ID, "Done", 2)
	require.NoError(t, err)
	_, err = repo.CreateSwimLane(ctx, project.ID, "To Do", 0)
	require.NoError(t, err)
	_, err = repo.CreateSwimLane(ctx, project.ID, "Doing", 1)
	require.NoError(t, err)

	lanes, err := repo.GetSwimLanesByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 3)
	assert.Equal(t, "To Do", lanes[0].Name)
	assert.Equal(t, "Doing", lanes[1].Name)
	assert.Equal(t, "Done", lanes[2].Name)
}

func TestTaskNullableAssignee(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")
	project, err := repo.CreateProjectRecord(ctx, "Board", owner.ID, nil)
	require.NoError(t, err)
	lane, err := repo.CreateSwimLane(ctx, project.ID, "To Do", 0)
	require.NoError(t, err)

	unassigned, err := repo.CreateTask(ctx, project.ID, lane.ID, "Loose end", "", nil, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssignedTo)

	assigned, err := repo.CreateTask(ctx, project.ID, lane.ID, "Owned", "", &owner.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, owner.ID, *assigned.AssignedTo)

	fetched, err := repo.GetTaskByID(ctx, unassigned.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.AssignedTo)
}

func TestUserRoleExists(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")
	project, err := repo.CreateProjectRecord(ctx, "Board", owner.ID, nil)
	require.NoError(t, err)

	exists, err := repo.UserRoleExists(ctx, project.ID, owner.ID, "lead")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.CreateUserRole(ctx, project.ID, owner.ID, "lead")
	require.NoError(t, err)

	exists, err = repo.UserRoleExists(ctx, project.ID, owner.ID, "lead")
	require.NoError(t, err)
	assert.True(t, exists)

	// Different role string is a different membership
	exists, err = repo.UserRoleExists(ctx, project.ID, owner.ID, "dev")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTemplatePayloadRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")
	assignee := uuid.New()

	full, err := repo.CreateTemplate(ctx, &models.Template{
		Name:        "Full",
		Description: "everything on",
		OwnerID:     owner.ID,
		Statuses:    []models.TemplateStatus{{Name: "Prep", Order: 0}, {Name: "Ship", Order: 1}},
		Roles:       []string{"lead"},
		Users:       []models.TemplateUser{{UserID: owner.ID, Role: "lead"}},
		Tasks:       []models.TemplateTask{{Title: "Do it", StatusOrder: 1, AssignedTo: &assignee}},
	})
	require.NoError(t, err)

	fetched, err := repo.GetTemplateByID(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, full.Statuses, fetched.Statuses)
	assert.Equal(t, full.Roles, fetched.Roles)
	assert.Equal(t, full.Users, fetched.Users)
	require.Len(t, fetched.Tasks, 1)
	assert.Equal(t, 1, fetched.Tasks[0].StatusOrder)
	require.NotNil(t, fetched.Tasks[0].AssignedTo)
	assert.Equal(t, assignee, *fetched.Tasks[0].AssignedTo)

	// Omitted sections stay nil through the round trip, they are not
	// flattened into empty slices.
	sparse, err := repo.CreateTemplate(ctx, &models.Template{Name: "Sparse", OwnerID: owner.ID})
	require.NoError(t, err)
	fetched, err = repo.GetTemplateByID(ctx, sparse.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Statuses)
	assert.Nil(t, fetched.Roles)
	assert.Nil(t, fetched.Users)
	assert.Nil(t, fetched.Tasks)
}

func TestWithTxRollback(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	repoTx := repo.WithTx(tx)
	project, err := repoTx.CreateProjectRecord(ctx, "Doomed", owner.ID, nil)
	require.NoError(t, err)
	_, err = repoTx.CreateSwimLane(ctx, project.ID, "Lane", 0)
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())

	// Nothing from the transaction survived
	_, err = repo.GetProjectByID(ctx, project.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestWithTxCommit(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	owner := seedUser(t, repo, "alice")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	repoTx := repo.WithTx(tx)
	project, err := repoTx.CreateProjectRecord(ctx, "Kept", owner.ID, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	fetched, err := repo.GetProjectByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", fetched.Name)
}

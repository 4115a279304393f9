// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema applied.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

// SetupTestRepo creates an in-memory database and wraps it in a Repository.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestUser creates a user with a generated external id and email.
func CreateTestUser(t *testing.T, repo *database.Repository, name string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), "ext-"+name, name+"@example.com", name, "Test")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a project owned by the given user.
func CreateTestProject(t *testing.T, repo *database.Repository, ownerID uuid.UUID, name string, roles []string) *models.Project {
	t.Helper()
	project, err := repo.CreateProjectRecord(context.Background(), name, ownerID, roles)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// CreateTestSwimLane creates a lane in the given project.
func CreateTestSwimLane(t *testing.T, repo *database.Repository, projectID uuid.UUID, name string, order int) *models.SwimLane {
	t.Helper()
	lane, err := repo.CreateSwimLane(context.Background(), projectID, name, order)
	if err != nil {
		t.Fatalf("Failed to create test swim lane: %v", err)
	}
	return lane
}

// CreateTestTask creates a task in the given lane.
func CreateTestTask(t *testing.T, repo *database.Repository, projectID, laneID uuid.UUID, title string, assignedTo *uuid.UUID, createdBy uuid.UUID) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), projectID, laneID, title, "", assignedTo, createdBy)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}

// CreateTestUserRole adds a membership to the given project.
func CreateTestUserRole(t *testing.T, repo *database.Repository, projectID, userID uuid.UUID, role string) *models.UserRole {
	t.Helper()
	userRole, err := repo.CreateUserRole(context.Background(), projectID, userID, role)
	if err != nil {
		t.Fatalf("Failed to create test user role: %v", err)
	}
	return userRole
}

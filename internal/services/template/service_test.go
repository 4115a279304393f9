package template

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/models"
	"github.com/laneboard/laneboard/internal/services/clone"
	"github.com/laneboard/laneboard/internal/testutil"
)

func allFlags() clone.Flags {
	return clone.Flags{
		IncludeStatuses: true,
		IncludeRoles:    true,
		IncludeUsers:    true,
		IncludeTasks:    true,
		KeepAssignees:   true,
	}
}

type fixture struct {
	repo    *database.Repository
	owner   *models.User
	member  *models.User
	project *models.Project
}

func setup(t *testing.T) fixture {
	t.Helper()
	repo := testutil.SetupTestRepo(t)

	owner := testutil.CreateTestUser(t, repo, "carol")
	member := testutil.CreateTestUser(t, repo, "dave")
	project := testutil.CreateTestProject(t, repo, owner.ID, "Rollout", []string{"lead", "qa"})

	prep := testutil.CreateTestSwimLane(t, repo, project.ID, "Prep", 0)
	ship := testutil.CreateTestSwimLane(t, repo, project.ID, "Ship", 1)

	testutil.CreateTestUserRole(t, repo, project.ID, owner.ID, "lead")
	testutil.CreateTestUserRole(t, repo, project.ID, member.ID, "qa")

	testutil.CreateTestTask(t, repo, project.ID, prep.ID, "Write checklist", &member.ID, owner.ID)
	testutil.CreateTestTask(t, repo, project.ID, ship.ID, "Tag release", nil, owner.ID)

	return fixture{repo: repo, owner: owner, member: member, project: project}
}

func TestSaveFromProject(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Release Train",
		Description:     "standard release flow",
		SourceProjectID: fx.project.ID,
		Flags:           allFlags(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Release Train", tmpl.Name)
	assert.Equal(t, fx.owner.ID, tmpl.OwnerID)
	assert.Equal(t, []string{"lead", "qa"}, tmpl.Roles)

	require.Len(t, tmpl.Statuses, 2)
	assert.Equal(t, models.TemplateStatus{Name: "Prep", Order: 0}, tmpl.Statuses[0])
	assert.Equal(t, models.TemplateStatus{Name: "Ship", Order: 1}, tmpl.Statuses[1])

	require.Len(t, tmpl.Users, 2)
	require.Len(t, tmpl.Tasks, 2)
	assert.Equal(t, 0, tmpl.Tasks[0].StatusOrder)
	assert.Equal(t, 1, tmpl.Tasks[1].StatusOrder)
	require.NotNil(t, tmpl.Tasks[0].AssignedTo)
	assert.Equal(t, fx.member.ID, *tmpl.Tasks[0].AssignedTo)

	// Saving never creates a project
	projects, err := fx.repo.GetProjectsByOwner(ctx, fx.owner.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestSaveFromProject_PartialFlags(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)

	tmpl, err := svc.SaveFromProject(context.Background(), fx.owner.ID, SaveRequest{
		Name:            "Bare Lanes",
		SourceProjectID: fx.project.ID,
		Flags:           clone.Flags{IncludeStatuses: true},
	})
	require.NoError(t, err)

	assert.Len(t, tmpl.Statuses, 2)
	assert.Nil(t, tmpl.Roles)
	assert.Nil(t, tmpl.Users)
	assert.Nil(t, tmpl.Tasks)
	assert.False(t, tmpl.HasAssignees())
}

func TestSaveFromProject_Errors(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	_, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "",
		SourceProjectID: fx.project.ID,
		Flags:           allFlags(),
	})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Tasks No Lanes",
		SourceProjectID: fx.project.ID,
		Flags:           clone.Flags{IncludeTasks: true},
	})
	assert.ErrorIs(t, err, clone.ErrTasksRequireStatuses)

	_, err = svc.SaveFromProject(ctx, fx.member.ID, SaveRequest{
		Name:            "Not Mine",
		SourceProjectID: fx.project.ID,
		Flags:           allFlags(),
	})
	assert.ErrorIs(t, err, ErrSourceProjectNotFound)
}

func TestListAndDelete(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	first, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "One",
		SourceProjectID: fx.project.ID,
		Flags:           clone.Flags{IncludeStatuses: true},
	})
	require.NoError(t, err)
	_, err = svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Two",
		SourceProjectID: fx.project.ID,
		Flags:           clone.Flags{IncludeStatuses: true},
	})
	require.NoError(t, err)

	templates, err := svc.List(ctx, fx.owner.ID)
	require.NoError(t, err)
	assert.Len(t, templates, 2)

	// Other owners see nothing
	templates, err = svc.List(ctx, fx.member.ID)
	require.NoError(t, err)
	assert.Empty(t, templates)

	require.NoError(t, svc.Delete(ctx, fx.owner.ID, first.ID))
	templates, err = svc.List(ctx, fx.owner.ID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Two", templates[0].Name)

	assert.ErrorIs(t, svc.Delete(ctx, fx.owner.ID, first.ID), ErrTemplateNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, fx.member.ID, templates[0].ID), ErrTemplateNotFound)
}

func TestInstantiate_FullTemplate(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Release Train",
		SourceProjectID: fx.project.ID,
		Flags:           allFlags(),
	})
	require.NoError(t, err)

	project, err := svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{
		Name:          "Q3 Release",
		TemplateID:    tmpl.ID,
		KeepAssignees: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Q3 Release", project.Name)
	assert.Equal(t, []string{"lead", "qa"}, project.Roles)

	lanes, err := fx.repo.GetSwimLanesByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 2)
	assert.Equal(t, "Prep", lanes[0].Name)
	assert.Equal(t, "Ship", lanes[1].Name)

	members, err := fx.repo.GetUserRolesByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	tasks, err := fx.repo.GetTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Tasks land in the lane whose position matches the recorded order
	assert.Equal(t, "Write checklist", tasks[0].Title)
	assert.Equal(t, lanes[0].ID, tasks[0].SwimLaneID)
	assert.Equal(t, "Tag release", tasks[1].Title)
	assert.Equal(t, lanes[1].ID, tasks[1].SwimLaneID)

	require.NotNil(t, tasks[0].AssignedTo)
	assert.Equal(t, fx.member.ID, *tasks[0].AssignedTo)
	for _, task := range tasks {
		assert.Equal(t, fx.owner.ID, task.CreatedBy)
	}
}

func TestInstantiate_DropAssignees(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Release Train",
		SourceProjectID: fx.project.ID,
		Flags:           allFlags(),
	})
	require.NoError(t, err)

	project, err := svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{
		Name:       "Clean Start",
		TemplateID: tmpl.ID,
	})
	require.NoError(t, err)

	tasks, err := fx.repo.GetTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Nil(t, task.AssignedTo)
	}
}

func TestInstantiate_EmptyTemplateGetsDefaultLanes(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := fx.repo.CreateTemplate(ctx, &models.Template{
		Name:    "Blank",
		OwnerID: fx.owner.ID,
	})
	require.NoError(t, err)

	project, err := svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{
		Name:       "Fresh Board",
		TemplateID: tmpl.ID,
	})
	require.NoError(t, err)

	lanes, err := fx.repo.GetSwimLanesByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 3)
	assert.Equal(t, "Backlog", lanes[0].Name)
	assert.Equal(t, "To Do", lanes[1].Name)
	assert.Equal(t, "Done", lanes[2].Name)
}

func TestInstantiate_SkipsVanishedUsers(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	gone := uuid.New()
	tmpl, err := fx.repo.CreateTemplate(ctx, &models.Template{
		Name:     "Stale Crew",
		OwnerID:  fx.owner.ID,
		Statuses: []models.TemplateStatus{{Name: "Todo", Order: 0}},
		Users: []models.TemplateUser{
			{UserID: fx.member.ID, Role: "qa"},
			{UserID: gone, Role: "lead"},
		},
		Tasks: []models.TemplateTask{
			{Title: "Kept", StatusOrder: 0, AssignedTo: &fx.member.ID},
			{Title: "Orphaned", StatusOrder: 0, AssignedTo: &gone},
		},
	})
	require.NoError(t, err)

	project, err := svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{
		Name:          "Revived",
		TemplateID:    tmpl.ID,
		KeepAssignees: true,
	})
	require.NoError(t, err)

	members, err := fx.repo.GetUserRolesByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, fx.member.ID, members[0].UserID)

	tasks, err := fx.repo.GetTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].AssignedTo)
	assert.Equal(t, fx.member.ID, *tasks[0].AssignedTo)
	assert.Nil(t, tasks[1].AssignedTo)
}

func TestInstantiate_UnknownStatusOrderFallsToFirstLane(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := fx.repo.CreateTemplate(ctx, &models.Template{
		Name:     "Mismatched",
		OwnerID:  fx.owner.ID,
		Statuses: []models.TemplateStatus{{Name: "A", Order: 0}, {Name: "B", Order: 1}},
		Tasks:    []models.TemplateTask{{Title: "Drifter", StatusOrder: 7}},
	})
	require.NoError(t, err)

	project, err := svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{
		Name:       "Landed",
		TemplateID: tmpl.ID,
	})
	require.NoError(t, err)

	lanes, err := fx.repo.GetSwimLanesByProject(ctx, project.ID)
	require.NoError(t, err)
	tasks, err := fx.repo.GetTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, lanes[0].ID, tasks[0].SwimLaneID)
}

func TestInstantiate_Errors(t *testing.T) {
	fx := setup(t)
	svc := NewService(fx.repo, nil)
	ctx := context.Background()

	tmpl, err := svc.SaveFromProject(ctx, fx.owner.ID, SaveRequest{
		Name:            "Mine",
		SourceProjectID: fx.project.ID,
		Flags:           clone.Flags{IncludeStatuses: true},
	})
	require.NoError(t, err)

	_, err = svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{Name: "", TemplateID: tmpl.ID})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Instantiate(ctx, fx.owner.ID, InstantiateRequest{Name: "Ghost", TemplateID: uuid.New()})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = svc.Instantiate(ctx, fx.member.ID, InstantiateRequest{Name: "Not Mine", TemplateID: tmpl.ID})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

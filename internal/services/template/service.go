package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/events"
	"github.com/laneboard/laneboard/internal/models"
	"github.com/laneboard/laneboard/internal/services/clone"
)

// defaultLanes are created when a template carries no statuses, so an
// instantiated project always has somewhere to put its first task.
var defaultLanes = []models.TemplateStatus{
	{Name: "Backlog", Order: 0},
	{Name: "To Do", Order: 1},
	{Name: "Done", Order: 2},
}

// Service defines all template-related business operations
type Service interface {
	// SaveFromProject stores the flag-selected structure of a live project
	// as a named template. No project is created.
	SaveFromProject(ctx context.Context, actorID uuid.UUID, req SaveRequest) (*models.Template, error)

	// List returns the actor's templates, newest first.
	List(ctx context.Context, actorID uuid.UUID) ([]*models.Template, error)

	// Delete soft-deletes one of the actor's templates.
	Delete(ctx context.Context, actorID, templateID uuid.UUID) error

	// Instantiate creates a new project from a stored template.
	Instantiate(ctx context.Context, actorID uuid.UUID, req InstantiateRequest) (*models.Project, error)
}

// SaveRequest encapsulates data for saving a project as a template
type SaveRequest struct {
	Name            string
	Description     string
	SourceProjectID uuid.UUID
	clone.Flags
}

// InstantiateRequest encapsulates data for creating a project from a template
type InstantiateRequest struct {
	Name          string
	TemplateID    uuid.UUID
	KeepAssignees bool
}

type service struct {
	repo     *database.Repository
	eventBus events.Publisher
}

// NewService creates a new template service
func NewService(repo *database.Repository, eventBus events.Publisher) Service {
	return &service{repo: repo, eventBus: eventBus}
}

// SaveFromProject extracts the same snapshot a clone would and stores it as a
// template row instead of writing a second project.
func (s *service) SaveFromProject(ctx context.Context, actorID uuid.UUID, req SaveRequest) (*models.Template, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 255 {
		return nil, ErrNameTooLong
	}
	if err := req.Flags.Validate(); err != nil {
		return nil, err
	}

	source, err := s.repo.GetProjectByID(ctx, req.SourceProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSourceProjectNotFound
		}
		return nil, fmt.Errorf("failed to get source project: %w", err)
	}
	if source.OwnerID != actorID {
		return nil, ErrSourceProjectNotFound
	}

	snap, err := clone.ExtractSnapshot(ctx, s.repo, source, req.Flags)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.CreateTemplate(ctx, snapshotToTemplate(name, req.Description, actorID, req.Flags, snap))
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventTemplateSaved,
		ProjectID: source.ID,
		ActorID:   actorID,
	})

	return tmpl, nil
}

// List returns all templates owned by the actor.
func (s *service) List(ctx context.Context, actorID uuid.UUID) ([]*models.Template, error) {
	return s.repo.GetTemplatesByOwner(ctx, actorID)
}

// Delete soft-deletes a template after an ownership check.
func (s *service) Delete(ctx context.Context, actorID, templateID uuid.UUID) error {
	tmpl, err := s.getOwnedTemplate(ctx, actorID, templateID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDeleteTemplate(ctx, tmpl.ID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:    events.EventTemplateDeleted,
		ActorID: actorID,
	})

	return nil
}

// Instantiate creates a new project from a stored template, running the same
// ordered write sequence as a live clone. Tasks are placed into the new lane
// whose order matches the one recorded at save time; memberships are only
// recreated for users that still exist, and assignees are kept only when the
// assignee is among the recreated memberships.
func (s *service) Instantiate(ctx context.Context, actorID uuid.UUID, req InstantiateRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 255 {
		return nil, ErrNameTooLong
	}

	tmpl, err := s.getOwnedTemplate(ctx, actorID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	snap, err := s.templateToSnapshot(ctx, tmpl, req.KeepAssignees)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback instantiate transaction", "error", err)
		}
	}()

	repoTx := s.repo.WithTx(tx)

	roles := tmpl.Roles
	if roles == nil {
		roles = []string{}
	}
	project, err := repoTx.CreateProjectRecord(ctx, name, actorID, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Assignees were already filtered against the recreated memberships, so
	// the write always keeps what the snapshot carries.
	if err := clone.WriteSnapshot(ctx, repoTx, project.ID, actorID, snap, true); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.Publish(s.eventBus, events.Event{
		Type:      events.EventProjectInstantiated,
		ProjectID: project.ID,
		ActorID:   actorID,
	})

	return project, nil
}

func (s *service) getOwnedTemplate(ctx context.Context, actorID, templateID uuid.UUID) (*models.Template, error) {
	tmpl, err := s.repo.GetTemplateByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if tmpl.OwnerID != actorID {
		return nil, ErrTemplateNotFound
	}
	return tmpl, nil
}

// snapshotToTemplate converts an extracted snapshot into the stored payload.
// Tasks record the order of the lane they sat in rather than its identity,
// since lane ids mean nothing outside the source project.
func snapshotToTemplate(name, description string, ownerID uuid.UUID, flags clone.Flags, snap *clone.Snapshot) *models.Template {
	tmpl := &models.Template{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Roles:       snap.Roles,
	}

	var laneOrder map[uuid.UUID]int
	if flags.IncludeStatuses {
		tmpl.Statuses = make([]models.TemplateStatus, 0, len(snap.Lanes))
		laneOrder = make(map[uuid.UUID]int, len(snap.Lanes))
		for _, lane := range snap.Lanes {
			tmpl.Statuses = append(tmpl.Statuses, models.TemplateStatus{Name: lane.Name, Order: lane.Order})
			laneOrder[lane.SourceID] = lane.Order
		}
	}

	if flags.IncludeUsers {
		tmpl.Users = make([]models.TemplateUser, 0, len(snap.Members))
		for _, member := range snap.Members {
			tmpl.Users = append(tmpl.Users, models.TemplateUser{UserID: member.UserID, Role: member.Role})
		}
	}

	if flags.IncludeTasks {
		tmpl.Tasks = make([]models.TemplateTask, 0, len(snap.Tasks))
		for _, task := range snap.Tasks {
			tmpl.Tasks = append(tmpl.Tasks, models.TemplateTask{
				Title:       task.Title,
				Description: task.Description,
				StatusOrder: laneOrder[task.SourceLaneID],
				AssignedTo:  task.AssignedTo,
			})
		}
	}

	return tmpl
}

// templateToSnapshot rebuilds a writable snapshot from the stored payload,
// synthesizing lane keys per recorded order so the cloner's remapping applies.
func (s *service) templateToSnapshot(ctx context.Context, tmpl *models.Template, keepAssignees bool) (*clone.Snapshot, error) {
	snap := &clone.Snapshot{Roles: tmpl.Roles}

	statuses := tmpl.Statuses
	if len(statuses) == 0 {
		statuses = defaultLanes
	}

	snap.Lanes = make([]clone.LaneSnapshot, 0, len(statuses))
	orderKey := make(map[int]uuid.UUID, len(statuses))
	firstKey := uuid.Nil
	for _, status := range statuses {
		key := uuid.New()
		snap.Lanes = append(snap.Lanes, clone.LaneSnapshot{
			SourceID: key,
			Name:     status.Name,
			Order:    status.Order,
		})
		orderKey[status.Order] = key
		if firstKey == uuid.Nil {
			firstKey = key
		}
	}

	// Memberships are only recreated for users that still exist; the template
	// may outlive the accounts it references.
	validUsers := make(map[uuid.UUID]bool)
	for _, member := range tmpl.Users {
		if _, err := s.repo.GetUserByID(ctx, member.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to check template user: %w", err)
		}
		snap.Members = append(snap.Members, clone.Membership{UserID: member.UserID, Role: member.Role})
		validUsers[member.UserID] = true
	}

	for _, task := range tmpl.Tasks {
		laneID, ok := orderKey[task.StatusOrder]
		if !ok {
			laneID = firstKey
		}
		ts := clone.TaskSnapshot{
			SourceLaneID: laneID,
			Title:        task.Title,
			Description:  task.Description,
		}
		if keepAssignees && task.AssignedTo != nil && validUsers[*task.AssignedTo] {
			assignee := *task.AssignedTo
			ts.AssignedTo = &assignee
		}
		snap.Tasks = append(snap.Tasks, ts)
	}

	return snap, nil
}

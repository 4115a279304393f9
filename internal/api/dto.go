package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/laneboard/laneboard/internal/models"
)

// Response shapes mirror the persisted entities; identity fields keep the
// names the frontend already uses.

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
}

type ProjectResponse struct {
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SwimLaneResponse struct {
	SwimLaneID uuid.UUID `json:"swim_lane_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TaskResponse struct {
	TaskID             uuid.UUID  `json:"task_id"`
	ProjectID          uuid.UUID  `json:"project_id"`
	ProjectSwimLaneID  uuid.UUID  `json:"project_swim_lane_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	AssignedTo         *uuid.UUID `json:"assigned_to"`
	CreatedBy          uuid.UUID  `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type UserRoleResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRoleWithUserResponse struct {
	UserRoleResponse
	User UserResponse `json:"user"`
}

// TemplateTaskResponse carries exactly what the caller needs to decide
// whether to expose the assignee-retention option.
type TemplateTaskResponse struct {
	Title      string     `json:"title"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

type TemplateResponse struct {
	TemplateID   uuid.UUID              `json:"template_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Tasks        []TemplateTaskResponse `json:"tasks"`
	HasAssignees bool                   `json:"has_assignees"`
	CreatedAt    time.Time              `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

func toProjectResponse(p *models.Project) ProjectResponse {
	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}
	return ProjectResponse{
		ProjectID: p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Roles:     roles,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toSwimLaneResponse(l *models.SwimLane) SwimLaneResponse {
	return SwimLaneResponse{
		SwimLaneID: l.ID,
		ProjectID:  l.ProjectID,
		Name:       l.Name,
		Order:      l.Order,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		TaskID:            t.ID,
		ProjectID:         t.ProjectID,
		ProjectSwimLaneID: t.SwimLaneID,
		Title:             t.Title,
		Description:       t.Description,
		AssignedTo:        t.AssignedTo,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toUserRoleResponse(ur *models.UserRole) UserRoleResponse {
	return UserRoleResponse{
		ID:        ur.ID,
		ProjectID: ur.ProjectID,
		UserID:    ur.UserID,
		Role:      ur.Role,
		CreatedAt: ur.CreatedAt,
		UpdatedAt: ur.UpdatedAt,
	}
}

func toTemplateResponse(t *models.Template) TemplateResponse {
	tasks := make([]TemplateTaskResponse, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		tasks = append(tasks, TemplateTaskResponse{Title: task.Title, AssignedTo: task.AssignedTo})
	}
	return TemplateResponse{
		TemplateID:   t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Tasks:        tasks,
		HasAssignees: t.HasAssignees(),
		CreatedAt:    t.CreatedAt,
	}
}

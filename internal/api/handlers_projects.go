package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/clone"
	"github.com/laneboard/laneboard/internal/services/project"
)

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type UpdateProjectRequest struct {
	Name  *string  `json:"name"`
	Roles []string `json:"roles"`
}

// CloneProjectRequest is the body for POST /api/projects/clone. The include
// flags select which parts of the source project carry over.
type CloneProjectRequest struct {
	Name            string    `json:"name"`
	SourceProjectID uuid.UUID `json:"source_project_id"`
	IncludeStatuses bool      `json:"include_statuses"`
	IncludeRoles    bool      `json:"include_roles"`
	IncludeUsers    bool      `json:"include_users"`
	IncludeTasks    bool      `json:"include_tasks"`
	KeepAssignees   bool      `json:"keep_assignees"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	actor := actorFrom(c)
	projects, err := s.projects.GetProjects(c.Request().Context(), actor.ID)
	if err != nil {
		return internalError(c, err)
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	created, err := s.projects.CreateProject(c.Request().Context(), actor.ID, project.CreateRequest{Name: req.Name})
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

func (s *Server) handleGetProject(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	found, err := s.projects.GetProject(c.Request().Context(), actor.ID, id)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(found))
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	updated, err := s.projects.UpdateProject(c.Request().Context(), actor.ID, project.UpdateRequest{
		ID:    id,
		Name:  req.Name,
		Roles: req.Roles,
	})
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(updated))
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	if err := s.projects.DeleteProject(c.Request().Context(), actor.ID, id); err != nil {
		return projectError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCloneProject(c echo.Context) error {
	var req CloneProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	created, err := s.cloner.CloneProject(c.Request().Context(), actor.ID, clone.CloneRequest{
		Name:            req.Name,
		SourceProjectID: req.SourceProjectID,
		Flags: clone.Flags{
			IncludeStatuses: req.IncludeStatuses,
			IncludeRoles:    req.IncludeRoles,
			IncludeUsers:    req.IncludeUsers,
			IncludeTasks:    req.IncludeTasks,
			KeepAssignees:   req.KeepAssignees,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, clone.ErrEmptyName), errors.Is(err, clone.ErrNameTooLong), errors.Is(err, clone.ErrTasksRequireStatuses):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, clone.ErrSourceProjectNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return internalError(c, err)
		}
	}

	s.metrics.ClonesTotal.Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

func projectError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, project.ErrEmptyName), errors.Is(err, project.ErrNameTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, project.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return internalError(c, err)
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/clone"
	"github.com/laneboard/laneboard/internal/services/template"
)

// SaveTemplateRequest is the body for POST /api/templates/from-project. It
// carries the same include flags as a clone; the selection is stored instead
// of written to a new project.
type SaveTemplateRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	SourceProjectID uuid.UUID `json:"source_project_id"`
	IncludeStatuses bool      `json:"include_statuses"`
	IncludeRoles    bool      `json:"include_roles"`
	IncludeUsers    bool      `json:"include_users"`
	IncludeTasks    bool      `json:"include_tasks"`
	KeepAssignees   bool      `json:"keep_assignees"`
}

type InstantiateTemplateRequest struct {
	Name          string    `json:"name"`
	TemplateID    uuid.UUID `json:"template_id"`
	KeepAssignees bool      `json:"keep_assignees"`
}

func (s *Server) handleListTemplates(c echo.Context) error {
	actor := actorFrom(c)
	templates, err := s.templates.List(c.Request().Context(), actor.ID)
	if err != nil {
		return internalError(c, err)
	}

	resp := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, toTemplateResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSaveTemplate(c echo.Context) error {
	var req SaveTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	saved, err := s.templates.SaveFromProject(c.Request().Context(), actor.ID, template.SaveRequest{
		Name:            req.Name,
		Description:     req.Description,
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
		return templateError(c, err)
	}

	s.metrics.TemplatesSavedTotal.Inc()
	return c.JSON(http.StatusCreated, toTemplateResponse(saved))
}

func (s *Server) handleInstantiateTemplate(c echo.Context) error {
	var req InstantiateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	created, err := s.templates.Instantiate(c.Request().Context(), actor.ID, template.InstantiateRequest{
		Name:          req.Name,
		TemplateID:    req.TemplateID,
		KeepAssignees: req.KeepAssignees,
	})
	if err != nil {
		return templateError(c, err)
	}

	s.metrics.InstantiationsTotal.Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

func (s *Server) handleDeleteTemplate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	if err := s.templates.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return templateError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func templateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, template.ErrEmptyName),
		errors.Is(err, template.ErrNameTooLong),
		errors.Is(err, clone.ErrTasksRequireStatuses):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, template.ErrTemplateNotFound), errors.Is(err, template.ErrSourceProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return internalError(c, err)
	}
}

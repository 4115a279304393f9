package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/task"
)

type CreateTaskRequest struct {
	ProjectID   uuid.UUID  `json:"project_id"`
	SwimLaneID  uuid.UUID  `json:"project_swim_lane_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// UpdateTaskRequest distinguishes "leave the assignee alone" (field absent)
// from "remove the assignee" (clear_assignee true).
type UpdateTaskRequest struct {
	SwimLaneID    *uuid.UUID `json:"project_swim_lane_id"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	AssignedTo    *uuid.UUID `json:"assigned_to"`
	ClearAssignee bool       `json:"clear_assignee"`
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	created, err := s.tasks.CreateTask(c.Request().Context(), actor.ID, task.CreateRequest{
		ProjectID:   req.ProjectID,
		SwimLaneID:  req.SwimLaneID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(http.StatusCreated, toTaskResponse(created))
}

func (s *Server) handleListProjectTasks(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	tasks, err := s.tasks.GetProjectTasks(c.Request().Context(), actor.ID, projectID)
	if err != nil {
		return taskError(c, err)
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	updated, err := s.tasks.UpdateTask(c.Request().Context(), actor.ID, task.UpdateRequest{
		ID:            id,
		SwimLaneID:    req.SwimLaneID,
		Title:         req.Title,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		ClearAssignee: req.ClearAssignee,
	})
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(updated))
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	if err := s.tasks.DeleteTask(c.Request().Context(), actor.ID, id); err != nil {
		return taskError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrProjectNotFound),
		errors.Is(err, task.ErrSwimLaneNotFound),
		errors.Is(err, task.ErrAssigneeNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return internalError(c, err)
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/swimlane"
)

type CreateSwimLaneRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
}

type UpdateSwimLaneRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

func (s *Server) handleListSwimLanes(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	lanes, err := s.swimLanes.GetSwimLanes(c.Request().Context(), actor.ID, projectID)
	if err != nil {
		return swimLaneError(c, err)
	}

	resp := make([]SwimLaneResponse, 0, len(lanes))
	for _, lane := range lanes {
		resp = append(resp, toSwimLaneResponse(lane))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateSwimLane(c echo.Context) error {
	var req CreateSwimLaneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	lane, err := s.swimLanes.CreateSwimLane(c.Request().Context(), actor.ID, swimlane.CreateRequest{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Order:     req.Order,
	})
	if err != nil {
		return swimLaneError(c, err)
	}
	return c.JSON(http.StatusCreated, toSwimLaneResponse(lane))
}

func (s *Server) handleUpdateSwimLane(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateSwimLaneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	lane, err := s.swimLanes.UpdateSwimLane(c.Request().Context(), actor.ID, swimlane.UpdateRequest{
		ID:    id,
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		return swimLaneError(c, err)
	}
	return c.JSON(http.StatusOK, toSwimLaneResponse(lane))
}

func (s *Server) handleDeleteSwimLane(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	if err := s.swimLanes.DeleteSwimLane(c.Request().Context(), actor.ID, id); err != nil {
		return swimLaneError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func swimLaneError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, swimlane.ErrEmptyName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, swimlane.ErrSwimLaneNotFound), errors.Is(err, swimlane.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return internalError(c, err)
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/userrole"
)

type CreateUserRoleRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleListUserRoles(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	roles, err := s.userRoles.GetProjectUserRoles(c.Request().Context(), actor.ID, projectID)
	if err != nil {
		return userRoleError(c, err)
	}

	resp := make([]UserRoleWithUserResponse, 0, len(roles))
	for _, ur := range roles {
		resp = append(resp, UserRoleWithUserResponse{
			UserRoleResponse: toUserRoleResponse(&ur.UserRole),
			User:             toUserResponse(&ur.User),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateUserRole(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}

	var req CreateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	created, err := s.userRoles.CreateUserRole(c.Request().Context(), actor.ID, userrole.CreateRequest{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
	if err != nil {
		return userRoleError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserRoleResponse(created))
}

func (s *Server) handleUpdateUserRole(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}
	userRoleID, err := parseUUIDParam(c, "userRoleID")
	if err != nil {
		return err
	}

	var req UpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := actorFrom(c)
	updated, err := s.userRoles.UpdateUserRole(c.Request().Context(), actor.ID, userrole.UpdateRequest{
		ProjectID:  projectID,
		UserRoleID: userRoleID,
		Role:       req.Role,
	})
	if err != nil {
		return userRoleError(c, err)
	}
	return c.JSON(http.StatusOK, toUserRoleResponse(updated))
}

func (s *Server) handleDeleteUserRole(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "projectID")
	if err != nil {
		return err
	}
	userRoleID, err := parseUUIDParam(c, "userRoleID")
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	if err := s.userRoles.DeleteUserRole(c.Request().Context(), actor.ID, projectID, userRoleID); err != nil {
		return userRoleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func userRoleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, userrole.ErrRoleNotDefined), errors.Is(err, userrole.ErrDuplicateRole):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, userrole.ErrUserRoleNotFound),
		errors.Is(err, userrole.ErrProjectNotFound),
		errors.Is(err, userrole.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return internalError(c, err)
	}
}

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/laneboard/laneboard/internal/services/user"
)

// SyncUserRequest is the body for POST /api/users, sent with provider
// sign-up data.
type SyncUserRequest struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

func (s *Server) handleSyncUser(c echo.Context) error {
	var req SyncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	synced, err := s.users.Sync(c.Request().Context(), user.SyncRequest{
		ExternalID: req.ExternalID,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmptyExternalID), errors.Is(err, user.ErrEmptyEmail), errors.Is(err, user.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return internalError(c, err)
		}
	}
	return c.JSON(http.StatusOK, toUserResponse(synced))
}

func (s *Server) handleGetUser(c echo.Context) error {
	found, err := s.users.GetByExternalID(c.Request().Context(), c.Param("externalID"))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(found))
}

// parseUUIDParam reads a path parameter as a UUID, mapping parse failures to
// a 400 rather than leaking them as 500s.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// internalError logs the cause and hides it from the caller.
func internalError(c echo.Context, err error) error {
	slog.Error("request failed",
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
		"error", err,
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

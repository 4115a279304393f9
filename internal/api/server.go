// Package api provides the HTTP interface of the board service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/laneboard/laneboard/internal/services/clone"
	"github.com/laneboard/laneboard/internal/services/project"
	"github.com/laneboard/laneboard/internal/services/swimlane"
	"github.com/laneboard/laneboard/internal/services/task"
	"github.com/laneboard/laneboard/internal/services/template"
	"github.com/laneboard/laneboard/internal/services/user"
	"github.com/laneboard/laneboard/internal/services/userrole"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Services bundles the business services the server exposes.
type Services struct {
	Users     user.Service
	Projects  project.Service
	SwimLanes swimlane.Service
	Tasks     task.Service
	UserRoles userrole.Service
	Cloner    clone.Service
	Templates template.Service
}

// Server provides the HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	config   *Config
	verifier IdentityVerifier
	metrics  *Metrics

	users     user.Service
	projects  project.Service
	swimLanes swimlane.Service
	tasks     task.Service
	userRoles userrole.Service
	cloner    clone.Service
	templates template.Service
}

// NewServer creates a new HTTP server.
func NewServer(cfg *Config, svcs Services, verifier IdentityVerifier, metrics *Metrics) (*Server, error) {
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8080}
	}
	if verifier == nil {
		return nil, fmt.Errorf("identity verifier is required")
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		config:    cfg,
		verifier:  verifier,
		metrics:   metrics,
		users:     svcs.Users,
		projects:  svcs.Projects,
		swimLanes: svcs.SwimLanes,
		tasks:     svcs.Tasks,
		userRoles: svcs.UserRoles,
		cloner:    svcs.Cloner,
		templates: svcs.Templates,
	}
	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	// Auth sync endpoints are called by the provider before a session exists.
	s.echo.POST("/api/users", s.handleSyncUser)
	s.echo.GET("/api/users/:externalID", s.handleGetUser)

	api := s.echo.Group("/api", s.authMiddleware)

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects/:id", s.handleGetProject)
	api.PUT("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)
	api.POST("/projects/clone", s.handleCloneProject)

	api.GET("/projects/:projectID/swim-lanes", s.handleListSwimLanes)
	api.POST("/swim-lanes", s.handleCreateSwimLane)
	api.PUT("/swim-lanes/:id", s.handleUpdateSwimLane)
	api.DELETE("/swim-lanes/:id", s.handleDeleteSwimLane)

	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks/project/:projectID", s.handleListProjectTasks)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/projects/:projectID/user-roles", s.handleListUserRoles)
	api.POST("/projects/:projectID/user-roles", s.handleCreateUserRole)
	api.PUT("/projects/:projectID/user-roles/:userRoleID", s.handleUpdateUserRole)
	api.DELETE("/projects/:projectID/user-roles/:userRoleID", s.handleDeleteUserRole)

	api.GET("/templates", s.handleListTemplates)
	api.POST("/templates/from-project", s.handleSaveTemplate)
	api.POST("/templates/create-project", s.handleInstantiateTemplate)
	api.DELETE("/templates/:id", s.handleDeleteTemplate)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	slog.Info("http server starting", "addr", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

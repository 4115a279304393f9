package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/laneboard/laneboard/internal/api"
	"github.com/laneboard/laneboard/internal/config"
	"github.com/laneboard/laneboard/internal/database"
	"github.com/laneboard/laneboard/internal/events"
	"github.com/laneboard/laneboard/internal/logging"
	"github.com/laneboard/laneboard/internal/services/clone"
	"github.com/laneboard/laneboard/internal/services/project"
	"github.com/laneboard/laneboard/internal/services/swimlane"
	"github.com/laneboard/laneboard/internal/services/task"
	"github.com/laneboard/laneboard/internal/services/template"
	"github.com/laneboard/laneboard/internal/services/user"
	"github.com/laneboard/laneboard/internal/services/userrole"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	// .env is optional; environment variables win over the config file
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.Path); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	repo := database.NewRepository(db)

	eventBus := events.NewBus()
	defer eventBus.Close()

	svcs := api.Services{
		Users:     user.NewService(repo),
		Projects:  project.NewService(repo, eventBus),
		SwimLanes: swimlane.NewService(repo, eventBus),
		Tasks:     task.NewService(repo, eventBus),
		UserRoles: userrole.NewService(repo),
		Cloner:    clone.NewService(repo, eventBus),
		Templates: template.NewService(repo, eventBus),
	}

	server, err := api.NewServer(&api.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}, svcs, api.PassthroughVerifier{}, api.NewMetrics())
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	slog.Info("laneboard server started", "host", cfg.Server.Host, "port", cfg.Server.Port, "pid", os.Getpid())

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("laneboard server shutting down gracefully")
}

package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/db"
	"github.com/streakpost/streakpost/internal/handler"
	"github.com/streakpost/streakpost/internal/repository"
	"github.com/streakpost/streakpost/internal/routes"
	"github.com/streakpost/streakpost/internal/service"
	"github.com/streakpost/streakpost/internal/storage"
)

// App wires the engine together: database, repositories, services, handlers
// and the routing table.
type App struct {
	Config  *config.Config
	DB      *sqlx.DB
	Handler http.Handler
}

func New(cfg *config.Config) (*App, error) {
	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.RunMigrations(conn.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	projectRepo := repository.NewProjectRepository(conn)
	postRepo := repository.NewProgressPostRepository(conn)
	statsRepo := repository.NewStreakStatsRepository(conn)
	badgeRepo := repository.NewBadgeRepository(conn)
	userBadgeRepo := repository.NewUserBadgeRepository(conn)

	notifier := service.NewNotifier(cfg)
	badgeSvc := service.NewBadgeService(badgeRepo, userBadgeRepo, statsRepo, notifier)
	projectSvc := service.NewProjectService(projectRepo, statsRepo)
	streakSvc := service.NewStreakService(projectRepo, postRepo, statsRepo)
	calendarSvc := service.NewCalendarService(projectRepo, postRepo)

	var uploadSvc *service.UploadService
	var uploadHandler *handler.UploadHandler
	if cfg.HasStorage() {
		store, err := storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage: %w", err)
		}
		uploadSvc = service.NewUploadService(store)
		uploadHandler = handler.NewUploadHandler(uploadSvc)
	} else {
		slog.Info("no object store configured, image uploads disabled")
	}

	postingSvc := service.NewPostingService(
		projectRepo, postRepo, statsRepo,
		badgeSvc, notifier, uploadSvc,
		cfg.DailyPostCap, cfg.MaxPostContentLength,
	)

	h := routes.New(cfg, &routes.Handlers{
		Health:   handler.NewHealthHandler(conn),
		Project:  handler.NewProjectHandler(projectSvc, streakSvc),
		Progress: handler.NewProgressHandler(postingSvc),
		Streak:   handler.NewStreakHandler(streakSvc, calendarSvc),
		Badge:    handler.NewBadgeHandler(badgeSvc),
		Upload:   uploadHandler,
	})

	return &App{
		Config:  cfg,
		DB:      conn,
		Handler: h,
	}, nil
}

func (a *App) Close() {
	err := db.Close(a.DB)
	if err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

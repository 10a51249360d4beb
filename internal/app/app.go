package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/summitapp/summit/internal/config"
	"github.com/summitapp/summit/internal/db"
	"github.com/summitapp/summit/internal/notify"
	"github.com/summitapp/summit/internal/repository"
	"github.com/summitapp/summit/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Hub             *notify.Hub
	IdentityService *service.IdentityService
	GoalService     *service.GoalService
	TodoService     *service.TodoService
	CategoryService *service.CategoryService
	TimelineService *service.TimelineService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	categoryRepository := repository.NewCategoryRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	todoRepository := repository.NewTodoRepository(database)

	// Change-notification hub
	hub := notify.NewHub()

	// Services
	identityService := service.NewIdentityService(cfg.AuthTokenSecret)
	goalService := service.NewGoalService(goalRepository, todoRepository, categoryRepository, hub)
	todoService := service.NewTodoService(todoRepository, goalRepository, hub)
	categoryService := service.NewCategoryService(categoryRepository, hub)
	timelineService := service.NewTimelineService(todoRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Hub:             hub,
		IdentityService: identityService,
		GoalService:     goalService,
		TodoService:     todoService,
		CategoryService: categoryService,
		TimelineService: timelineService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

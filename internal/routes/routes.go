package routes

import (
	"net/http"

	"github.com/summitapp/summit/internal/app"
	"github.com/summitapp/summit/internal/handler"
	"github.com/summitapp/summit/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	goal := handler.NewGoalHandler(app.GoalService)
	todo := handler.NewTodoHandler(app.TodoService)
	category := handler.NewCategoryHandler(app.CategoryService)
	timeline := handler.NewTimelineHandler(app.TimelineService, app.Cfg.TimelinePageSize)
	events := handler.NewEventsHandler(app.Hub)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("POST /api/goals/{id}/toggle", middleware.RequireAuth(goal.ToggleCompletion))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Todos
	mux.HandleFunc("POST /api/goals/{id}/todos", middleware.RequireAuth(todo.Create))
	mux.HandleFunc("PATCH /api/todos/{id}", middleware.RequireAuth(todo.Update))
	mux.HandleFunc("POST /api/todos/{id}/toggle", middleware.RequireAuth(todo.ToggleCompletion))
	mux.HandleFunc("DELETE /api/todos/{id}", middleware.RequireAuth(todo.Delete))

	// Categories
	mux.HandleFunc("GET /api/categories", middleware.RequireAuth(category.List))
	mux.HandleFunc("POST /api/categories", middleware.RequireAuth(category.Create))
	mux.HandleFunc("DELETE /api/categories/{id}", middleware.RequireAuth(category.Delete))

	// Timeline
	mux.HandleFunc("GET /api/timeline", middleware.RequireAuth(timeline.Timeline))
	mux.HandleFunc("GET /api/timeline/weekly", middleware.RequireAuth(timeline.Weekly))

	// Change feed
	mux.HandleFunc("GET /api/events", middleware.RequireAuth(events.Stream))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.RateLimit(app.Cfg.RateLimitRequests, app.Cfg.RateLimitWindow),
		middleware.Auth(app.IdentityService),
	)

	return handler
}

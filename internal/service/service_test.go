package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/summitapp/summit/internal/db"
	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/notify"
	"github.com/summitapp/summit/internal/repository"
)

// testEnv wires the services against an in-memory SQLite database with all
// migrations applied. The pool is capped at one connection so every query
// sees the same memory database.
type testEnv struct {
	db         *sqlx.DB
	hub        *notify.Hub
	goalRepo   repository.GoalRepository
	todoRepo   repository.TodoRepository
	catRepo    repository.CategoryRepository
	goals      *GoalService
	todos      *TodoService
	categories *CategoryService
	timeline   *TimelineService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("connecting test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	hub := notify.NewHub()
	goalRepo := repository.NewGoalRepository(conn)
	todoRepo := repository.NewTodoRepository(conn)
	catRepo := repository.NewCategoryRepository(conn)

	return &testEnv{
		db:         conn,
		hub:        hub,
		goalRepo:   goalRepo,
		todoRepo:   todoRepo,
		catRepo:    catRepo,
		goals:      NewGoalService(goalRepo, todoRepo, catRepo, hub),
		todos:      NewTodoService(todoRepo, goalRepo, hub),
		categories: NewCategoryService(catRepo, hub),
		timeline:   NewTimelineService(todoRepo),
	}
}

const testUser = "user-1"

func futureDate() time.Time {
	return time.Now().Add(30 * 24 * time.Hour)
}

func (e *testEnv) mustCreateGoal(t *testing.T, userID string) *model.Goal {
	t.Helper()

	goal, err := e.goals.Create(userID, "Learn to sail", "Get the day skipper license", time.Now().Add(30*24*time.Hour), nil)
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	return goal
}

func (e *testEnv) mustCreateTodo(t *testing.T, userID, goalID, name string) *model.Todo {
	t.Helper()

	todo, err := e.todos.Create(userID, goalID, CreateTodoInput{Name: name})
	if err != nil {
		t.Fatalf("creating todo %q: %v", name, err)
	}
	return todo
}

func (e *testEnv) count(t *testing.T, table string) int {
	t.Helper()

	var n int
	err := e.db.Get(&n, "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func (e *testEnv) goalProgress(t *testing.T, userID, goalID string) int {
	t.Helper()

	goal, err := e.goalRepo.ByID(userID, goalID)
	if err != nil {
		t.Fatalf("fetching goal: %v", err)
	}
	return goal.Progress
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/summitapp/summit/internal/model"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
)

type TodoRepository interface {
	Create(todo *model.Todo) error
	ByID(userID, todoID string) (*model.Todo, error)
	ByGoal(goalID string) ([]*model.Todo, error)
	ByGoals(goalIDs []string) ([]*model.Todo, error)
	Update(todo *model.Todo) error
	Delete(todoID string) error
	CompletedPage(userID string, before *time.Time, limit int) ([]*model.TimelineTodo, error)
	CompletedBetween(userID string, start, end time.Time) ([]*model.TimelineTodo, error)
}

type todoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(todo *model.Todo) error {
	query := `INSERT INTO todos (id, goal_id, name, description, priority, due_date, estimated_time, completed, completed_time, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		todo.ID,
		todo.GoalID,
		todo.Name,
		todo.Description,
		todo.Priority,
		todo.DueDate,
		todo.EstimatedTime,
		todo.Completed,
		todo.CompletedTime,
		todo.CreatedAt,
	)

	return err
}

// ByID scopes the lookup through the owning goal so a user can never see
// another user's todos.
func (r *todoRepository) ByID(userID, todoID string) (*model.Todo, error) {
	todo := &model.Todo{}
	query := `SELECT todos.* FROM todos
	          JOIN goals ON goals.id = todos.goal_id
	          WHERE todos.id = $1 AND goals.user_id = $2`

	err := r.db.Get(todo, query, todoID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (r *todoRepository) ByGoal(goalID string) ([]*model.Todo, error) {
	var todos []*model.Todo
	query := `SELECT * FROM todos WHERE goal_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&todos, query, goalID)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

// ByGoals loads the todos of several goals in one query, for the expanded
// goal list.
func (r *todoRepository) ByGoals(goalIDs []string) ([]*model.Todo, error) {
	if len(goalIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM todos WHERE goal_id IN (?) ORDER BY created_at ASC`, goalIDs)
	if err != nil {
		return nil, err
	}

	var todos []*model.Todo
	err = r.db.Select(&todos, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *todoRepository) Update(todo *model.Todo) error {
	query := `UPDATE todos
	          SET name = $1, description = $2, priority = $3, due_date = $4, estimated_time = $5, completed = $6, completed_time = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		todo.Name,
		todo.Description,
		todo.Priority,
		todo.DueDate,
		todo.EstimatedTime,
		todo.Completed,
		todo.CompletedTime,
		todo.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTodoNotFound
	}

	return nil
}

func (r *todoRepository) Delete(todoID string) error {
	query := `DELETE FROM todos WHERE id = $1`
	result, err := r.db.Exec(query, todoID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// CompletedPage returns completed todos newest-first, strictly older than
// before when it is given.
func (r *todoRepository) CompletedPage(userID string, before *time.Time, limit int) ([]*model.TimelineTodo, error) {
	var todos []*model.TimelineTodo
	var err error

	if before != nil {
		query := `SELECT todos.*, goals.name AS goal_name FROM todos
		          JOIN goals ON goals.id = todos.goal_id
		          WHERE goals.user_id = $1 AND todos.completed = TRUE AND todos.completed_time IS NOT NULL
		            AND todos.completed_time < $2
		          ORDER BY todos.completed_time DESC LIMIT $3`
		err = r.db.Select(&todos, query, userID, *before, limit)
	} else {
		query := `SELECT todos.*, goals.name AS goal_name FROM todos
		          JOIN goals ON goals.id = todos.goal_id
		          WHERE goals.user_id = $1 AND todos.completed = TRUE AND todos.completed_time IS NOT NULL
		          ORDER BY todos.completed_time DESC LIMIT $2`
		err = r.db.Select(&todos, query, userID, limit)
	}

	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *todoRepository) CompletedBetween(userID string, start, end time.Time) ([]*model.TimelineTodo, error) {
	var todos []*model.TimelineTodo

	query := `SELECT todos.*, goals.name AS goal_name FROM todos
	          JOIN goals ON goals.id = todos.goal_id
	          WHERE goals.user_id = $1 AND todos.completed = TRUE AND todos.completed_time IS NOT NULL
	            AND todos.completed_time >= $2 AND todos.completed_time <= $3
	          ORDER BY todos.completed_time DESC`

	err := r.db.Select(&todos, query, userID, start, end)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

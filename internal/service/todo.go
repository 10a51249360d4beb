package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/notify"
	"github.com/summitapp/summit/internal/repository"
)

type TodoService struct {
	repo     repository.TodoRepository
	goalRepo repository.GoalRepository
	hub      *notify.Hub
}

func NewTodoService(
	repo repository.TodoRepository,
	goalRepo repository.GoalRepository,
	hub *notify.Hub,
) *TodoService {
	return &TodoService{
		repo:     repo,
		goalRepo: goalRepo,
		hub:      hub,
	}
}

type CreateTodoInput struct {
	Name          string
	Description   string
	Priority      *string
	DueDate       *time.Time
	EstimatedTime *int
}

// UpdateTodoInput carries quick-edit changes. Nil fields are left as they
// are; completion state is never touched here (see ToggleCompletion).
type UpdateTodoInput struct {
	Name          *string
	Description   *string
	Priority      *string
	DueDate       *time.Time
	EstimatedTime *int
}

func (s *TodoService) Create(userID, goalID string, in CreateTodoInput) (*model.Todo, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if in.EstimatedTime != nil && *in.EstimatedTime < 0 {
		return nil, apperr.Validation("estimated_time", "must not be negative")
	}
	if in.Priority != nil && !model.ValidPriority(*in.Priority) {
		return nil, apperr.Validation("priority", "must be low, medium, or high")
	}

	// Ownership check on the target goal
	goal, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, storeErr("get goal", err)
	}

	todo := &model.Todo{
		ID:            uuid.New().String(),
		GoalID:        goal.ID,
		Name:          in.Name,
		Description:   in.Description,
		Priority:      in.Priority,
		DueDate:       in.DueDate,
		EstimatedTime: in.EstimatedTime,
		Completed:     false,
		CreatedAt:     time.Now(),
	}

	err = s.repo.Create(todo)
	if err != nil {
		return nil, storeErr("create todo", err)
	}

	err = s.recomputeProgress(goal.ID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionTodos, Op: notify.OpInsert, ID: todo.ID})
	return todo, nil
}

// ToggleCompletion flips completed. Transitioning to complete stamps
// completed_time; transitioning back clears it. Both fields change in the
// same update, then the owning goal's progress is recomputed and persisted.
func (s *TodoService) ToggleCompletion(userID, todoID string) (*model.Todo, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	todo, err := s.repo.ByID(userID, todoID)
	if err != nil {
		return nil, storeErr("get todo", err)
	}

	todo.Completed = !todo.Completed
	if todo.Completed {
		now := time.Now()
		todo.CompletedTime = &now
	} else {
		todo.CompletedTime = nil
	}

	err = s.repo.Update(todo)
	if err != nil {
		return nil, storeErr("update todo", err)
	}

	err = s.recomputeProgress(todo.GoalID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionTodos, Op: notify.OpUpdate, ID: todo.ID})
	return todo, nil
}

func (s *TodoService) Update(userID, todoID string, in UpdateTodoInput) (*model.Todo, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if in.EstimatedTime != nil && *in.EstimatedTime < 0 {
		return nil, apperr.Validation("estimated_time", "must not be negative")
	}
	if in.Priority != nil && *in.Priority != "" && !model.ValidPriority(*in.Priority) {
		return nil, apperr.Validation("priority", "must be low, medium, or high")
	}

	todo, err := s.repo.ByID(userID, todoID)
	if err != nil {
		return nil, storeErr("get todo", err)
	}

	if in.Name != nil {
		todo.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Priority != nil {
		if *in.Priority == "" {
			todo.Priority = nil
		} else {
			todo.Priority = in.Priority
		}
	}
	if in.DueDate != nil {
		todo.DueDate = in.DueDate
	}
	if in.EstimatedTime != nil {
		todo.EstimatedTime = in.EstimatedTime
	}

	err = s.repo.Update(todo)
	if err != nil {
		return nil, storeErr("update todo", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionTodos, Op: notify.OpUpdate, ID: todo.ID})
	return todo, nil
}

// Delete removes the todo, then recomputes the owning goal's progress from
// the post-deletion set (back to 0 when no todos remain).
func (s *TodoService) Delete(userID, todoID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	todo, err := s.repo.ByID(userID, todoID)
	if err != nil {
		return storeErr("get todo", err)
	}

	err = s.repo.Delete(todo.ID)
	if err != nil {
		return storeErr("delete todo", err)
	}

	err = s.recomputeProgress(todo.GoalID)
	if err != nil {
		return err
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionTodos, Op: notify.OpDelete, ID: todo.ID})
	return nil
}

func (s *TodoService) recomputeProgress(goalID string) error {
	todos, err := s.repo.ByGoal(goalID)
	if err != nil {
		return storeErr("list todos", err)
	}

	err = s.goalRepo.UpdateProgress(goalID, ComputeProgress(todos))
	if err != nil {
		return storeErr("update progress", err)
	}

	return nil
}

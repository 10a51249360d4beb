package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/notify"
	"github.com/summitapp/summit/internal/repository"
)

const (
	// CategoryFilterAll matches every goal; CategoryFilterNone matches goals
	// without a category.
	CategoryFilterAll  = "all"
	CategoryFilterNone = "uncategorized"
)

type GoalService struct {
	repo         repository.GoalRepository
	todoRepo     repository.TodoRepository
	categoryRepo repository.CategoryRepository
	hub          *notify.Hub
}

func NewGoalService(
	repo repository.GoalRepository,
	todoRepo repository.TodoRepository,
	categoryRepo repository.CategoryRepository,
	hub *notify.Hub,
) *GoalService {
	return &GoalService{
		repo:         repo,
		todoRepo:     todoRepo,
		categoryRepo: categoryRepo,
		hub:          hub,
	}
}

// Create validates the input, then inserts a goal with zero progress. The
// due date must be strictly in the future at submission time.
func (s *GoalService) Create(userID, name, description string, dueDate time.Time, categoryID *string) (*model.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description", "is required")
	}
	if !dueDate.After(time.Now()) {
		return nil, apperr.Validation("due_date", "must be in the future")
	}

	if categoryID != nil {
		_, err := s.categoryRepo.ByID(userID, *categoryID)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperr.Validation("category_id", "unknown category")
		}
		if err != nil {
			return nil, storeErr("lookup category", err)
		}
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		Progress:    0,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, storeErr("create goal", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionGoals, Op: notify.OpInsert, ID: goal.ID})
	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, storeErr("get goal", err)
	}
	return goal, nil
}

// Goals returns the user's goals newest-first with todos and category
// expanded. categoryFilter is "all", "uncategorized", or a category id.
func (s *GoalService) Goals(userID, categoryFilter string) ([]*model.GoalWithTodos, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, storeErr("list goals", err)
	}

	filtered := goals[:0:0]
	for _, goal := range goals {
		switch categoryFilter {
		case "", CategoryFilterAll:
			filtered = append(filtered, goal)
		case CategoryFilterNone:
			if goal.CategoryID == nil {
				filtered = append(filtered, goal)
			}
		default:
			if goal.CategoryID != nil && *goal.CategoryID == categoryFilter {
				filtered = append(filtered, goal)
			}
		}
	}

	goalIDs := make([]string, len(filtered))
	for i, goal := range filtered {
		goalIDs[i] = goal.ID
	}

	todos, err := s.todoRepo.ByGoals(goalIDs)
	if err != nil {
		return nil, storeErr("list todos", err)
	}
	todosByGoal := make(map[string][]*model.Todo)
	for _, todo := range todos {
		todosByGoal[todo.GoalID] = append(todosByGoal[todo.GoalID], todo)
	}

	categories, err := s.categoryRepo.Categories(userID)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	categoriesByID := make(map[string]*model.Category, len(categories))
	for _, category := range categories {
		categoriesByID[category.ID] = category
	}

	expanded := make([]*model.GoalWithTodos, len(filtered))
	for i, goal := range filtered {
		item := &model.GoalWithTodos{
			Goal:  *goal,
			Todos: todosByGoal[goal.ID],
		}
		if item.Todos == nil {
			item.Todos = []*model.Todo{}
		}
		if goal.CategoryID != nil {
			item.Category = categoriesByID[*goal.CategoryID]
		}
		expanded[i] = item
	}

	return expanded, nil
}

// Update applies edit-dialog changes. Unlike Create it does not require the
// due date to be in the future, so an already-overdue goal stays editable.
func (s *GoalService) Update(userID, goalID, name, description string, dueDate time.Time, categoryID *string) (*model.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name", "is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("description", "is required")
	}
	if dueDate.IsZero() {
		return nil, apperr.Validation("due_date", "is required")
	}

	if categoryID != nil {
		_, err := s.categoryRepo.ByID(userID, *categoryID)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperr.Validation("category_id", "unknown category")
		}
		if err != nil {
			return nil, storeErr("lookup category", err)
		}
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, storeErr("get goal", err)
	}

	goal.Name = name
	goal.Description = description
	goal.DueDate = dueDate
	goal.CategoryID = categoryID

	err = s.repo.Update(goal)
	if err != nil {
		return nil, storeErr("update goal", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionGoals, Op: notify.OpUpdate, ID: goal.ID})
	return goal, nil
}

// ToggleCompletion flips is_completed. This is a manual override: it is
// independent of progress and leaves every todo untouched.
func (s *GoalService) ToggleCompletion(userID, goalID string) (*model.Goal, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, storeErr("get goal", err)
	}

	goal.IsCompleted = !goal.IsCompleted

	err = s.repo.Update(goal)
	if err != nil {
		return nil, storeErr("update goal", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionGoals, Op: notify.OpUpdate, ID: goal.ID})
	return goal, nil
}

// Delete removes the goal. Its todos go with it via the store's cascade
// policy; the category is never touched.
func (s *GoalService) Delete(userID, goalID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	err := s.repo.Delete(userID, goalID)
	if err != nil {
		return storeErr("delete goal", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionGoals, Op: notify.OpDelete, ID: goalID})
	return nil
}

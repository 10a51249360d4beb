package service

import (
	"errors"
	"testing"
	"time"

	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/repository"
)

func TestCreateGoal(t *testing.T) {
	env := newTestEnv(t)

	due := time.Now().Add(7 * 24 * time.Hour)
	goal, err := env.goals.Create(testUser, "Run a marathon", "Finish under four hours", due, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if goal.Progress != 0 {
		t.Errorf("new goal progress = %d, want 0", goal.Progress)
	}
	if goal.IsCompleted {
		t.Error("new goal should not be completed")
	}
	if goal.CategoryID != nil {
		t.Errorf("new goal category = %v, want nil", *goal.CategoryID)
	}

	stored, err := env.goalRepo.ByID(testUser, goal.ID)
	if err != nil {
		t.Fatalf("ByID after create: %v", err)
	}
	if stored.Name != "Run a marathon" {
		t.Errorf("stored name = %q", stored.Name)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	env := newTestEnv(t)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name        string
		goalName    string
		description string
		dueDate     time.Time
	}{
		{"empty name", "", "desc", future},
		{"blank name", "   ", "desc", future},
		{"empty description", "name", "", future},
		{"past due date", "name", "desc", time.Now().Add(-time.Hour)},
		{"due date right now", "name", "desc", time.Now().Add(-time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.goals.Create(testUser, tt.goalName, tt.description, tt.dueDate, nil)
			if !apperr.IsValidation(err) {
				t.Fatalf("Create = %v, want validation error", err)
			}
		})
	}

	// Rejected input must not touch the store.
	if n := env.count(t, "goals"); n != 0 {
		t.Errorf("goals in store after rejected creates = %d, want 0", n)
	}
}

func TestCreateGoalRequiresUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.goals.Create("", "name", "desc", time.Now().Add(time.Hour), nil)
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("Create without user = %v, want ErrUnauthenticated", err)
	}
}

func TestCreateGoalUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	unknown := "no-such-category"
	_, err := env.goals.Create(testUser, "name", "desc", time.Now().Add(time.Hour), &unknown)
	if !apperr.IsValidation(err) {
		t.Fatalf("Create with unknown category = %v, want validation error", err)
	}
}

func TestToggleGoalCompletionIsManualOverride(t *testing.T) {
	env := newTestEnv(t)
	goal := env.mustCreateGoal(t, testUser)
	todo := env.mustCreateTodo(t, testUser, goal.ID, "still open")

	toggled, err := env.goals.ToggleCompletion(testUser, goal.ID)
	if err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if !toggled.IsCompleted {
		t.Error("goal should be completed after toggle")
	}

	// Progress and todos are untouched by the override.
	if got := env.goalProgress(t, testUser, goal.ID); got != 0 {
		t.Errorf("progress after goal toggle = %d, want 0", got)
	}
	stored, err := env.todoRepo.ByID(testUser, todo.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Completed {
		t.Error("todo must stay incomplete when its goal is marked complete")
	}

	back, err := env.goals.ToggleCompletion(testUser, goal.ID)
	if err != nil {
		t.Fatalf("second ToggleCompletion: %v", err)
	}
	if back.IsCompleted {
		t.Error("goal should be active again after second toggle")
	}
}

func TestDeleteGoalCascadesTodos(t *testing.T) {
	env := newTestEnv(t)
	goal := env.mustCreateGoal(t, testUser)
	env.mustCreateTodo(t, testUser, goal.ID, "a")
	env.mustCreateTodo(t, testUser, goal.ID, "b")

	err := env.goals.Delete(testUser, goal.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if n := env.count(t, "goals"); n != 0 {
		t.Errorf("goals after delete = %d, want 0", n)
	}
	if n := env.count(t, "todos"); n != 0 {
		t.Errorf("todos after goal delete = %d, want 0 (store cascade)", n)
	}
}

func TestGoalsExpandsAndFilters(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.categories.Create(testUser, "Health")
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}

	categorized, err := env.goals.Create(testUser, "Sleep more", "Eight hours", time.Now().Add(time.Hour), &category.ID)
	if err != nil {
		t.Fatalf("creating categorized goal: %v", err)
	}
	plain := env.mustCreateGoal(t, testUser)
	env.mustCreateTodo(t, testUser, plain.ID, "first step")

	all, err := env.goals.Goals(testUser, CategoryFilterAll)
	if err != nil {
		t.Fatalf("Goals(all): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Goals(all) = %d goals, want 2", len(all))
	}
	for _, g := range all {
		switch g.ID {
		case categorized.ID:
			if g.Category == nil || g.Category.Name != "Health" {
				t.Error("categorized goal missing expanded category")
			}
		case plain.ID:
			if len(g.Todos) != 1 {
				t.Errorf("plain goal todos = %d, want 1", len(g.Todos))
			}
		}
	}

	uncategorized, err := env.goals.Goals(testUser, CategoryFilterNone)
	if err != nil {
		t.Fatalf("Goals(uncategorized): %v", err)
	}
	if len(uncategorized) != 1 || uncategorized[0].ID != plain.ID {
		t.Errorf("Goals(uncategorized) returned wrong set")
	}

	byCategory, err := env.goals.Goals(testUser, category.ID)
	if err != nil {
		t.Fatalf("Goals(category): %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != categorized.ID {
		t.Errorf("Goals(category id) returned wrong set")
	}
}

func TestGoalsScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	goal := env.mustCreateGoal(t, testUser)

	_, err := env.goals.ByID("someone-else", goal.ID)
	if !errors.Is(err, repository.ErrGoalNotFound) {
		t.Fatalf("ByID as other user = %v, want ErrGoalNotFound", err)
	}
}

func TestUpdateGoalAllowsPastDueDate(t *testing.T) {
	env := newTestEnv(t)
	goal := env.mustCreateGoal(t, testUser)

	// Editing an overdue goal must not be rejected for its date.
	past := time.Now().Add(-24 * time.Hour)
	updated, err := env.goals.Update(testUser, goal.ID, "Renamed", "Still going", past, nil)
	if err != nil {
		t.Fatalf("Update with past due date: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("updated name = %q", updated.Name)
	}
}

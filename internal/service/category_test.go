package service

import (
	"testing"

	"github.com/summitapp/summit/internal/apperr"
)

func TestCreateCategoryTrimsName(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.categories.Create(testUser, "  Fitness  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if category.Name != "Fitness" {
		t.Errorf("name = %q, want %q", category.Name, "Fitness")
	}
	if category.ID == "" {
		t.Error("created category must carry its id for immediate selection")
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"", "   "} {
		_, err := env.categories.Create(testUser, name)
		if !apperr.IsValidation(err) {
			t.Fatalf("Create(%q) = %v, want validation error", name, err)
		}
	}

	if n := env.count(t, "categories"); n != 0 {
		t.Errorf("categories after rejected creates = %d, want 0", n)
	}
}

func TestCategoriesSortedByName(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Work", "Fitness", "Reading"} {
		_, err := env.categories.Create(testUser, name)
		if err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}

	categories, err := env.categories.Categories(testUser)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	want := []string{"Fitness", "Reading", "Work"}
	if len(categories) != len(want) {
		t.Fatalf("Categories = %d entries, want %d", len(categories), len(want))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("categories[%d] = %q, want %q", i, categories[i].Name, name)
		}
	}
}

// Deleting a category must only remove the category: goals keep existing and
// merely lose the reference, and todos are untouched.
func TestDeleteCategoryDetachesGoals(t *testing.T) {
	env := newTestEnv(t)

	category, err := env.categories.Create(testUser, "Travel")
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}

	goal, err := env.goals.Create(testUser, "Visit Norway", "Fjords in summer", futureDate(), &category.ID)
	if err != nil {
		t.Fatalf("creating goal: %v", err)
	}
	env.mustCreateTodo(t, testUser, goal.ID, "book flights")

	goalsBefore := env.count(t, "goals")
	todosBefore := env.count(t, "todos")

	err = env.categories.Delete(testUser, category.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if n := env.count(t, "categories"); n != 0 {
		t.Errorf("categories after delete = %d, want 0", n)
	}
	if n := env.count(t, "goals"); n != goalsBefore {
		t.Errorf("goals after category delete = %d, want %d", n, goalsBefore)
	}
	if n := env.count(t, "todos"); n != todosBefore {
		t.Errorf("todos after category delete = %d, want %d", n, todosBefore)
	}

	detached, err := env.goalRepo.ByID(testUser, goal.ID)
	if err != nil {
		t.Fatalf("ByID after category delete: %v", err)
	}
	if detached.CategoryID != nil {
		t.Errorf("goal category_id after delete = %v, want nil", *detached.CategoryID)
	}
}

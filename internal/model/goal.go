package model

import (
	"time"
)

type Goal struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	CategoryID  *string   `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	Progress    int       `db:"progress" json:"progress"`
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GoalWithTodos is the expanded shape the goal list returns: the goal, its
// todos, and the category it references (nil when uncategorized).
type GoalWithTodos struct {
	Goal
	Todos    []*Todo   `json:"todos"`
	Category *Category `json:"category,omitempty"`
}

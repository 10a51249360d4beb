package model

import (
	"time"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Todo struct {
	ID            string     `db:"id" json:"id"`
	GoalID        string     `db:"goal_id" json:"goal_id"`
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description"`
	Priority      *string    `db:"priority" json:"priority"`
	DueDate       *time.Time `db:"due_date" json:"due_date"`
	EstimatedTime *int       `db:"estimated_time" json:"estimated_time"`
	Completed     bool       `db:"completed" json:"completed"`
	CompletedTime *time.Time `db:"completed_time" json:"completed_time"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// TimelineTodo is a completed todo joined with the name of the goal it
// belongs to, as surfaced on the timeline.
type TimelineTodo struct {
	Todo
	GoalName string `db:"goal_name" json:"goal_name"`
}

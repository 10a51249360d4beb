package session

import (
	"time"

	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/service"
)

// command is one optimistic mutation of the cached state: apply patches the
// cache in place, revert restores the pre-mutation snapshot. Both run under
// the session lock.
type command struct {
	apply  func()
	revert func()
}

func (s *Session) run(cmd command, persist func() error) error {
	s.mu.Lock()
	cmd.apply()
	s.mu.Unlock()

	err := persist()
	if err != nil {
		s.mu.Lock()
		cmd.revert()
		s.mu.Unlock()
		return err
	}

	// On success the hub event triggers a refresh, which replaces the
	// optimistic state with the store's.
	return nil
}

func (s *Session) toggleCommand(todoID string) command {
	var snapshot *model.GoalWithTodos

	return command{
		apply: func() {
			goal := s.findGoalOfTodo(todoID)
			if goal == nil {
				return
			}
			snapshot = cloneGoal(goal)

			for _, todo := range goal.Todos {
				if todo.ID == todoID {
					todo.Completed = !todo.Completed
					if todo.Completed {
						now := time.Now()
						todo.CompletedTime = &now
					} else {
						todo.CompletedTime = nil
					}
					break
				}
			}
			goal.Progress = service.ComputeProgress(goal.Todos)
		},
		revert: func() {
			s.restoreGoal(snapshot)
		},
	}
}

func (s *Session) deleteCommand(todoID string) command {
	var snapshot *model.GoalWithTodos

	return command{
		apply: func() {
			goal := s.findGoalOfTodo(todoID)
			if goal == nil {
				return
			}
			snapshot = cloneGoal(goal)

			kept := goal.Todos[:0:0]
			for _, todo := range goal.Todos {
				if todo.ID != todoID {
					kept = append(kept, todo)
				}
			}
			goal.Todos = kept
			goal.Progress = service.ComputeProgress(goal.Todos)
		},
		revert: func() {
			s.restoreGoal(snapshot)
		},
	}
}

// findGoalOfTodo locates the cached goal containing todoID. Caller holds the
// lock.
func (s *Session) findGoalOfTodo(todoID string) *model.GoalWithTodos {
	for _, goal := range s.state {
		for _, todo := range goal.Todos {
			if todo.ID == todoID {
				return goal
			}
		}
	}
	return nil
}

// restoreGoal swaps the snapshot back into the cached state. Caller holds
// the lock.
func (s *Session) restoreGoal(snapshot *model.GoalWithTodos) {
	if snapshot == nil {
		return
	}
	for i, goal := range s.state {
		if goal.ID == snapshot.ID {
			s.state[i] = snapshot
			return
		}
	}
}

func cloneGoal(goal *model.GoalWithTodos) *model.GoalWithTodos {
	clone := &model.GoalWithTodos{
		Goal:     goal.Goal,
		Category: goal.Category,
		Todos:    make([]*model.Todo, len(goal.Todos)),
	}
	for i, todo := range goal.Todos {
		copied := *todo
		clone.Todos[i] = &copied
	}
	return clone
}

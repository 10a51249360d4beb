// Package session owns the per-user view state: a cached expansion of the
// user's goals that refreshes whenever the change hub fires, plus optimistic
// todo mutations that apply locally first and roll back if the store call
// fails. Re-fetching is the only synchronization mechanism; a refresh is
// idempotent and safe to interleave with any in-flight mutation.
package session

import (
	"sync"

	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/notify"
	"github.com/summitapp/summit/internal/service"
)

type Session struct {
	userID string
	goals  *service.GoalService
	todos  *service.TodoService

	mu    sync.Mutex
	state []*model.GoalWithTodos

	cancel func()
}

// New builds a session, loads the initial state, and subscribes to goal and
// todo changes so any mutation (including ones from other sessions) triggers
// a re-fetch. Close must be called to drop the subscription.
func New(userID string, goals *service.GoalService, todos *service.TodoService, hub *notify.Hub) (*Session, error) {
	s := &Session{
		userID: userID,
		goals:  goals,
		todos:  todos,
	}

	err := s.Refresh()
	if err != nil {
		return nil, err
	}

	s.cancel = hub.Subscribe(func(notify.Event) {
		// Errors here leave the cached state stale; the next event or
		// explicit Refresh recovers.
		_ = s.Refresh()
	}, notify.CollectionGoals, notify.CollectionTodos, notify.CollectionCategories)

	return s, nil
}

func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Refresh re-fetches the full expanded goal list and replaces the cache.
func (s *Session) Refresh() error {
	state, err := s.goals.Goals(s.userID, service.CategoryFilterAll)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Goals returns the cached goal list.
func (s *Session) Goals() []*model.GoalWithTodos {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ToggleTodo optimistically flips the todo in the cached state, then
// persists. On store failure the pre-mutation snapshot is restored and the
// error returned for the caller to surface.
func (s *Session) ToggleTodo(todoID string) error {
	cmd := s.toggleCommand(todoID)
	return s.run(cmd, func() error {
		_, err := s.todos.ToggleCompletion(s.userID, todoID)
		return err
	})
}

// DeleteTodo optimistically removes the todo from the cached state, then
// persists, rolling back on failure.
func (s *Session) DeleteTodo(todoID string) error {
	cmd := s.deleteCommand(todoID)
	return s.run(cmd, func() error {
		return s.todos.Delete(s.userID, todoID)
	})
}

package service

import (
	"errors"

	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/repository"
)

// storeErr wraps a repository error as a StoreError, letting the not-found
// sentinels pass through untouched so handlers can map them to 404.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrGoalNotFound) ||
		errors.Is(err, repository.ErrTodoNotFound) ||
		errors.Is(err, repository.ErrCategoryNotFound) {
		return err
	}
	return apperr.Store(op, err)
}

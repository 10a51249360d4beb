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

type CategoryService struct {
	repo repository.CategoryRepository
	hub  *notify.Hub
}

func NewCategoryService(repo repository.CategoryRepository, hub *notify.Hub) *CategoryService {
	return &CategoryService{
		repo: repo,
		hub:  hub,
	}
}

// Create inserts a category and returns it so the caller can select it
// immediately (e.g. pre-selecting it in a goal form). Name uniqueness per
// user is not enforced.
func (s *CategoryService) Create(userID, name string) (*model.Category, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}

	category := &model.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	err := s.repo.Create(category)
	if err != nil {
		return nil, storeErr("create category", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionCategories, Op: notify.OpInsert, ID: category.ID})
	return category, nil
}

func (s *CategoryService) Categories(userID string) ([]*model.Category, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	categories, err := s.repo.Categories(userID)
	if err != nil {
		return nil, storeErr("list categories", err)
	}

	return categories, nil
}

// Delete removes only the category. Goals referencing it are detached by the
// store's SET NULL policy; no goal or todo is ever deleted here.
func (s *CategoryService) Delete(userID, categoryID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	err := s.repo.Delete(userID, categoryID)
	if err != nil {
		return storeErr("delete category", err)
	}

	s.hub.Publish(notify.Event{Collection: notify.CollectionCategories, Op: notify.OpDelete, ID: categoryID})
	return nil
}

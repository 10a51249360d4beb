package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/summitapp/summit/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository interface {
	Create(category *model.Category) error
	ByID(userID, categoryID string) (*model.Category, error)
	Categories(userID string) ([]*model.Category, error)
	Delete(userID, categoryID string) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	query := `INSERT INTO categories (id, user_id, name, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		category.ID,
		category.UserID,
		category.Name,
		category.CreatedAt,
	)

	return err
}

func (r *categoryRepository) ByID(userID, categoryID string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1 AND user_id = $2`

	err := r.db.Get(category, query, categoryID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) Categories(userID string) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY name ASC`

	err := r.db.Select(&categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Delete removes the category row only. Goals referencing it are detached by
// the schema's ON DELETE SET NULL policy, never deleted.
func (r *categoryRepository) Delete(userID, categoryID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, categoryID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

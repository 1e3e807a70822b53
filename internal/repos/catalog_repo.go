package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopbot/internal/domain"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) RootCategories() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, parent_id
	  FROM categories
	  WHERE parent_id IS NULL
	  ORDER BY name
	`)
	return out, err
}

func (r *CatalogRepo) Subcategories(parentID int64) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, parent_id
	  FROM categories
	  WHERE parent_id = ?
	  ORDER BY name
	`, parentID)
	return out, err
}

func (r *CatalogRepo) ProductsByCategory(categoryID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, description, price, category_id, photo
	  FROM products
	  WHERE category_id = ?
	  ORDER BY name
	`, categoryID)
	return out, err
}

func (r *CatalogRepo) Product(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, description, price, category_id, photo
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}

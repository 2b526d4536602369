package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// CategoryRepository handles data access for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and fills in its generated id and timestamps.
func (r *CategoryRepository) Create(cat *models.Category) error {
	const q = `
        INSERT INTO categories (name, description)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, cat.Name, cat.Description).
		Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
}

// GetByID returns a single category by id.
func (r *CategoryRepository) GetByID(id int64) (*models.Category, error) {
	const q = `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	var cat models.Category
	if err := r.db.Get(&cat, q, id); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetByName returns a single category by its unique name (exact match).
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	const q = `SELECT * FROM categories WHERE name = $1 LIMIT 1`
	var cat models.Category
	if err := r.db.Get(&cat, q, name); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetAll returns every category ordered by name.
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`
	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product and fills in its generated id and timestamps.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (name, brand, description, category_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, p.Name, p.Brand, p.Description, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByName returns a single product by its unique name.
func (r *ProductRepository) GetByName(name string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE name = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, name); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll returns every product ordered by id.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	const q = `SELECT * FROM products ORDER BY id`
	var products []models.Product
	if err := r.db.Select(&products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByCategoryID returns all products belonging to a category.
func (r *ProductRepository) GetByCategoryID(categoryID int64) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE category_id = $1 ORDER BY id`
	var products []models.Product
	if err := r.db.Select(&products, q, categoryID); err != nil {
		return nil, err
	}
	return products, nil
}

// Update persists changed fields of an existing product and refreshes the
// updated_at timestamp.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products
        SET name = $1, brand = $2, description = $3, category_id = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING updated_at`
	return r.db.QueryRowx(q, p.Name, p.Brand, p.Description, p.CategoryID, p.ID).
		Scan(&p.UpdatedAt)
}

// Delete removes a product row. Returns sql.ErrNoRows when nothing matched.
func (r *ProductRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// PriceRepository handles data access for price records.
type PriceRepository struct {
	db *sqlx.DB
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Upsert inserts or replaces the price record for a product. There is at
// most one record per product id.
func (r *PriceRepository) Upsert(p *models.PriceRecord) error {
	const q = `
        INSERT INTO prices (product_id, price)
        VALUES ($1, $2)
        ON CONFLICT (product_id)
        DO UPDATE SET price = EXCLUDED.price, updated_at = NOW()
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, p.ProductID, p.Price).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByProductID returns the price record for a product.
func (r *PriceRepository) GetByProductID(productID int64) (*models.PriceRecord, error) {
	const q = `SELECT * FROM prices WHERE product_id = $1 LIMIT 1`
	var p models.PriceRecord
	if err := r.db.Get(&p, q, productID); err != nil {
		return nil, err
	}
	return &p, nil
}

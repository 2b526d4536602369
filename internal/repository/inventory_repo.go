package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// InventoryRepository handles data access for inventory records.
type InventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates a new InventoryRepository.
func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Upsert inserts or replaces the inventory record for a product. There is
// at most one record per product id.
func (r *InventoryRepository) Upsert(inv *models.InventoryRecord) error {
	const q = `
        INSERT INTO inventories (product_id, quantity)
        VALUES ($1, $2)
        ON CONFLICT (product_id)
        DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, inv.ProductID, inv.Quantity).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

// GetByProductID returns the inventory record for a product.
func (r *InventoryRepository) GetByProductID(productID int64) (*models.InventoryRecord, error) {
	const q = `SELECT * FROM inventories WHERE product_id = $1 LIMIT 1`
	var inv models.InventoryRecord
	if err := r.db.Get(&inv, q, productID); err != nil {
		return nil, err
	}
	return &inv, nil
}

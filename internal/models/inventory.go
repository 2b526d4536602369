package models

import "time"

// InventoryRecord is owned by the inventory service: one record per product.
type InventoryRecord struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

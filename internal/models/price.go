package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is owned by the pricing service: one record per product.
type PriceRecord struct {
	ID        int64           `db:"id" json:"id"`
	ProductID int64           `db:"product_id" json:"productId"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

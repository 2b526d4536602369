package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityStatus describes the stock situation derived from the inventory
// service during aggregation.
type QuantityStatus string

const (
	QuantityInStock    QuantityStatus = "IN_STOCK"
	QuantityOutOfStock QuantityStatus = "OUT_OF_STOCK"
	QuantityUnknown    QuantityStatus = "UNKNOWN"
)

// Product is the catalog entity owned by the product service. Price and
// stock live in the pricing and inventory services and are attached at
// read time only; they are never persisted on this row.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Brand       string    `db:"brand" json:"brand"`
	Description string    `db:"description" json:"description"`
	CategoryID  int64     `db:"category_id" json:"categoryId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Category groups products. Name is unique.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CompositeProductView is the response-time view of a product enriched with
// data owned by the pricing and inventory services. A nil Price means no
// price record could be resolved; it is distinct from a real zero price.
// Views are built per request and never persisted.
type CompositeProductView struct {
	ProductID      int64            `json:"productId"`
	Name           string           `json:"name"`
	Brand          string           `json:"brand"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Price          *decimal.Decimal `json:"price"`
	QuantityStatus QuantityStatus   `json:"quantityStatus"`
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

// InventoryStore is the persistence surface the inventory service needs.
type InventoryStore interface {
	Upsert(inv *models.InventoryRecord) error
	GetByProductID(productID int64) (*models.InventoryRecord, error)
}

// InventoryService owns stock records keyed by product id.
type InventoryService struct {
	inventories InventoryStore
	products    ProductChecker
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(inventories InventoryStore, products ProductChecker) *InventoryService {
	return &InventoryService{inventories: inventories, products: products}
}

// UpdateInventory saves the stock quantity for a product after confirming
// the product exists. An unreachable product service fails the write so an
// orphaned record is never saved.
func (s *InventoryService) UpdateInventory(ctx context.Context, productID int64, quantity int) (*models.InventoryRecord, error) {
	if productID <= 0 {
		return nil, utils.NewValidationError("Product id must be a positive integer")
	}
	if quantity < 0 {
		return nil, utils.NewValidationError("Quantity must not be negative")
	}

	status, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("checking product existence: %w", err)
	}
	switch status {
	case lookup.StatusNotFound:
		return nil, utils.NewNotFoundError("Product not found")
	case lookup.StatusUnavailable:
		return nil, utils.NewUnavailableError("Product Service is currently unavailable")
	}

	record := &models.InventoryRecord{ProductID: productID, Quantity: quantity}
	if err := s.inventories.Upsert(record); err != nil {
		return nil, fmt.Errorf("saving inventory: %w", err)
	}

	log.Info().Int64("product_id", productID).Int("quantity", quantity).Msg("inventory saved")
	return record, nil
}

// GetInventoryByProductID returns the inventory record for a product.
func (s *InventoryService) GetInventoryByProductID(ctx context.Context, productID int64) (*models.InventoryRecord, error) {
	if productID <= 0 {
		return nil, utils.NewValidationError("Product id must be a positive integer")
	}

	record, err := s.inventories.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Inventory not found for Product ID: %d", productID))
		}
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}
	return record, nil
}

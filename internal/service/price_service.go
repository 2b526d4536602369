package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

// PriceStore is the persistence surface the pricing service needs.
type PriceStore interface {
	Upsert(p *models.PriceRecord) error
	GetByProductID(productID int64) (*models.PriceRecord, error)
}

// ProductChecker confirms product existence with the product service.
type ProductChecker interface {
	Exists(ctx context.Context, productID int64) (lookup.Status, error)
}

// PriceService owns price records keyed by product id.
type PriceService struct {
	prices   PriceStore
	products ProductChecker
}

// NewPriceService constructs a PriceService.
func NewPriceService(prices PriceStore, products ProductChecker) *PriceService {
	return &PriceService{prices: prices, products: products}
}

// CreateOrUpdatePrice saves the price for a product. The product's
// existence is confirmed with the product service first: a missing product
// fails the write, and an unreachable product service fails it too rather
// than saving a record that may reference nothing.
func (s *PriceService) CreateOrUpdatePrice(ctx context.Context, productID int64, price decimal.Decimal) (*models.PriceRecord, error) {
	if productID <= 0 {
		return nil, utils.NewValidationError("Product id must be a positive integer")
	}
	if price.IsNegative() {
		return nil, utils.NewValidationError("Price must not be negative")
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

	record := &models.PriceRecord{ProductID: productID, Price: price}
	if err := s.prices.Upsert(record); err != nil {
		return nil, fmt.Errorf("saving price: %w", err)
	}

	log.Info().Int64("product_id", productID).Str("price", price.String()).Msg("price saved")
	return record, nil
}

// GetPriceByProductID returns the price record for a product.
func (s *PriceService) GetPriceByProductID(ctx context.Context, productID int64) (*models.PriceRecord, error) {
	if productID <= 0 {
		return nil, utils.NewValidationError("Product id must be a positive integer")
	}

	record, err := s.prices.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Price not found")
		}
		return nil, fmt.Errorf("fetching price: %w", err)
	}
	return record, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
	"github.com/Sethuso/product-management-system/pkg/lookup"
)

// Sort directions accepted by FindAvailableByCategory. Anything else is
// normalized to SortLowToHigh rather than failing the request.
const (
	SortLowToHigh = "low"
	SortHighToLow = "high"
)

// ProductStore is the persistence surface the product service needs.
type ProductStore interface {
	Create(p *models.Product) error
	GetByID(id int64) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetByCategoryID(categoryID int64) ([]models.Product, error)
	Update(p *models.Product) error
	Delete(id int64) error
}

// CategoryStore is the category persistence surface.
type CategoryStore interface {
	GetByID(id int64) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
}

// PriceFetcher fetches price records from the pricing service.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, productID int64) (lookup.PriceResult, error)
}

// InventoryFetcher fetches inventory records from the inventory service.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context, productID int64) (lookup.InventoryResult, error)
}

// ViewCache caches enriched views. May be nil (caching disabled).
type ViewCache interface {
	Get(ctx context.Context, productID int64) *models.CompositeProductView
	Set(ctx context.Context, view *models.CompositeProductView)
}

// ProductService owns the catalog and assembles composite product views by
// fanning out to the pricing and inventory services. Enrichment never
// writes back to the product row: fetched price and quantity are
// presentation-time data only.
type ProductService struct {
	products    ProductStore
	categories  CategoryStore
	prices      PriceFetcher
	inventory   InventoryFetcher
	views       ViewCache
	fanOutLimit int
}

// NewProductService constructs a ProductService. views may be nil to
// disable view caching; fanOutLimit bounds concurrent enrichment.
func NewProductService(
	products ProductStore,
	categories CategoryStore,
	prices PriceFetcher,
	inventory InventoryFetcher,
	views ViewCache,
	fanOutLimit int,
) *ProductService {
	if fanOutLimit <= 0 {
		fanOutLimit = 8
	}
	return &ProductService{
		products:    products,
		categories:  categories,
		prices:      prices,
		inventory:   inventory,
		views:       views,
		fanOutLimit: fanOutLimit,
	}
}

// CreateProduct persists a new product. Name must be unused and the
// category must exist.
func (s *ProductService) CreateProduct(ctx context.Context, name, brand, description string, categoryID int64) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("Product name must not be empty")
	}

	if _, err := s.products.GetByName(name); err == nil {
		return nil, utils.NewConflictError("Product with the same name already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking product name: %w", err)
	}

	if _, err := s.categories.GetByID(categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Category not found with ID: %d", categoryID))
		}
		return nil, fmt.Errorf("fetching category: %w", err)
	}

	product := &models.Product{
		Name:        name,
		Brand:       brand,
		Description: description,
		CategoryID:  categoryID,
	}
	if err := s.products.Create(product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// UpdateProduct mutates an existing product, re-validating the category
// reference when it changes.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, name, brand, description string, categoryID int64) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Product not found with ID: %d", id))
		}
		return nil, fmt.Errorf("fetching product: %w", err)
	}

	if categoryID != 0 && categoryID != product.CategoryID {
		if _, err := s.categories.GetByID(categoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.NewNotFoundError(fmt.Sprintf("Category not found with ID: %d", categoryID))
			}
			return nil, fmt.Errorf("fetching category: %w", err)
		}
		product.CategoryID = categoryID
	}
	if name = strings.TrimSpace(name); name != "" {
		product.Name = name
	}
	if brand != "" {
		product.Brand = brand
	}
	if description != "" {
		product.Description = description
	}

	if err := s.products.Update(product); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError(fmt.Sprintf("Product not found with ID: %d", id))
		}
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// GetAllProducts returns the raw catalog without enrichment.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return products, nil
}

// GetProductByID returns the enriched composite view for a single product.
// A fresh cached view is served when available; otherwise the view is
// assembled by fanning out to the pricing and inventory services.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.CompositeProductView, error) {
	if id <= 0 {
		return nil, utils.NewValidationError("Product id must be a positive integer")
	}

	if s.views != nil {
		if view := s.views.Get(ctx, id); view != nil {
			return view, nil
		}
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Product not found with ID: %d", id))
		}
		return nil, fmt.Errorf("fetching product: %w", err)
	}

	view := s.enrich(ctx, product, s.categoryName(product.CategoryID))
	if s.views != nil {
		s.views.Set(ctx, &view)
	}
	return &view, nil
}

// FindAvailableByCategory returns in-stock products for a category,
// enriched and ordered by price. Products whose stock could not be
// determined are excluded; products without a known price are included
// but always sort last.
func (s *ProductService) FindAvailableByCategory(ctx context.Context, categoryName, sortDirection string) ([]models.CompositeProductView, error) {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, utils.NewValidationError("Category name must not be null or empty")
	}

	category, err := s.categories.GetByName(categoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Category '%s' doesn't exist", categoryName))
		}
		return nil, fmt.Errorf("fetching category: %w", err)
	}

	// A bad sort hint never fails the request.
	sortDirection = strings.ToLower(sortDirection)
	if sortDirection != SortLowToHigh && sortDirection != SortHighToLow {
		sortDirection = SortLowToHigh
	}

	products, err := s.products.GetByCategoryID(category.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching products for category: %w", err)
	}

	views := s.enrichAll(ctx, products, category.Name)

	available := views[:0]
	for _, v := range views {
		if v.QuantityStatus == models.QuantityInStock {
			available = append(available, v)
		}
	}

	sortViews(available, sortDirection)
	return available, nil
}

// WarmCategory pre-builds and caches the views for every product in a
// category. Used by the cache-warm worker; a no-op when caching is off.
func (s *ProductService) WarmCategory(ctx context.Context, categoryName string) error {
	if s.views == nil {
		return nil
	}

	category, err := s.categories.GetByName(strings.TrimSpace(categoryName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError(fmt.Sprintf("Category '%s' doesn't exist", categoryName))
		}
		return fmt.Errorf("fetching category: %w", err)
	}

	products, err := s.products.GetByCategoryID(category.ID)
	if err != nil {
		return fmt.Errorf("fetching products for category: %w", err)
	}

	for _, view := range s.enrichAll(ctx, products, category.Name) {
		v := view
		s.views.Set(ctx, &v)
	}
	return nil
}

// enrich assembles the composite view for one product: the price and
// inventory lookups run concurrently and are jointly awaited before the
// view is built. Each lookup is fault-isolated; absence or unavailability
// degrades to the unknown sentinel, never to an error.
func (s *ProductService) enrich(ctx context.Context, product *models.Product, categoryName string) models.CompositeProductView {
	var (
		priceRes lookup.PriceResult
		invRes   lookup.InventoryResult
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := s.prices.FetchPrice(ctx, product.ID)
		if err != nil {
			log.Error().Err(err).Int64("product_id", product.ID).Msg("price lookup rejected input")
			res = lookup.PriceResult{Status: lookup.StatusUnavailable}
		}
		priceRes = res
	}()
	go func() {
		defer wg.Done()
		res, err := s.inventory.FetchInventory(ctx, product.ID)
		if err != nil {
			log.Error().Err(err).Int64("product_id", product.ID).Msg("inventory lookup rejected input")
			res = lookup.InventoryResult{Status: lookup.StatusUnavailable}
		}
		invRes = res
	}()
	wg.Wait()

	view := models.CompositeProductView{
		ProductID:      product.ID,
		Name:           product.Name,
		Brand:          product.Brand,
		Description:    product.Description,
		Category:       categoryName,
		QuantityStatus: models.QuantityUnknown,
	}

	if priceRes.Status == lookup.StatusFound {
		price := priceRes.Price
		view.Price = &price
	}

	if invRes.Status == lookup.StatusFound {
		if invRes.Quantity > 0 {
			view.QuantityStatus = models.QuantityInStock
		} else {
			view.QuantityStatus = models.QuantityOutOfStock
		}
	}

	return view
}

// enrichAll enriches every product concurrently with a bounded fan-out and
// joins all lookups before returning.
func (s *ProductService) enrichAll(ctx context.Context, products []models.Product, categoryName string) []models.CompositeProductView {
	views := make([]models.CompositeProductView, len(products))
	sem := make(chan struct{}, s.fanOutLimit)

	var wg sync.WaitGroup
	for i := range products {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			views[i] = s.enrich(ctx, &products[i], categoryName)
		}(i)
	}
	wg.Wait()

	return views
}

// categoryName resolves a category id to its name for display, degrading
// to empty on failure.
func (s *ProductService) categoryName(categoryID int64) string {
	category, err := s.categories.GetByID(categoryID)
	if err != nil {
		log.Warn().Err(err).Int64("category_id", categoryID).Msg("failed to resolve category name")
		return ""
	}
	return category.Name
}

// sortViews orders views by price, ascending for low and descending for
// high. Views without a known price sort last in either direction; ties
// break on ascending product id so results are deterministic.
func sortViews(views []models.CompositeProductView, direction string) {
	sort.SliceStable(views, func(i, j int) bool {
		vi, vj := views[i], views[j]
		switch {
		case vi.Price == nil && vj.Price == nil:
			return vi.ProductID < vj.ProductID
		case vi.Price == nil:
			return false
		case vj.Price == nil:
			return true
		}
		cmp := vi.Price.Cmp(*vj.Price)
		if cmp == 0 {
			return vi.ProductID < vj.ProductID
		}
		if direction == SortHighToLow {
			return cmp > 0
		}
		return cmp < 0
	})
}

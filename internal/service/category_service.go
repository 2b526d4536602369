package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/repository"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// CategoryService manages the category reference data for the catalog.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory persists a new category. Name is unique.
func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("Category name must not be null or empty")
	}

	if _, err := s.categories.GetByName(name); err == nil {
		return nil, utils.NewConflictError(fmt.Sprintf("Category with name '%s' already exists", name))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking category name: %w", err)
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	log.Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("category created")
	return category, nil
}

// GetCategoryByName returns a category by exact name.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("Category name must not be null or empty")
	}

	category, err := s.categories.GetByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("Category '%s' doesn't exist", name))
		}
		return nil, fmt.Errorf("fetching category: %w", err)
	}
	return category, nil
}

// GetAllCategories returns every category.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll()
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return categories, nil
}

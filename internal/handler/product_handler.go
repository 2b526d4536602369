package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// ProductHandler handles product-related HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the create payload.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId" binding:"required"`
}

// UpdateProductRequest is the update payload; zero-valued fields keep
// their current value.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
}

// CreateProduct creates a new product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: name and categoryId are required")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.Name, req.Brand, req.Description, req.CategoryID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct updates an existing product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "Product id must be a positive integer")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req.Name, req.Brand, req.Description, req.CategoryID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct removes a product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "Product id must be a positive integer")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// GetAllProducts returns the raw catalog.
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved successfully", products)
}

// GetProductByID returns the enriched composite view of one product.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "Query parameter 'id' must be a positive integer")
		return
	}

	view, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product retrieved successfully", view)
}

// GetProductsByCategory returns in-stock products for a category ordered
// by price.
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	categoryName := c.Query("categoryName")
	priceRange := c.Query("priceRange")

	views, err := h.productService.FindAvailableByCategory(c.Request.Context(), categoryName, priceRange)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	// Zero available products is a legitimate outcome, not an error.
	if len(views) == 0 {
		utils.Success(c, http.StatusOK,
			fmt.Sprintf("No available products found for category '%s'", categoryName), views)
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved successfully", views)
}

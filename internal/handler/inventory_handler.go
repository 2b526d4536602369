package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// InventoryHandler handles inventory-service HTTP endpoints.
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler constructs an InventoryHandler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// UpsertInventoryRequest is the create-or-update payload.
type UpsertInventoryRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// UpsertInventory saves the stock record for a product.
func (h *InventoryHandler) UpsertInventory(c *gin.Context) {
	var req UpsertInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: productId is required")
		return
	}

	record, err := h.inventoryService.UpdateInventory(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Inventory updated successfully", record)
}

// GetInventoryByProductID returns the stock record for a product.
func (h *InventoryHandler) GetInventoryByProductID(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil || productID <= 0 {
		utils.Error(c, http.StatusBadRequest, "Query parameter 'productId' must be a positive integer")
		return
	}

	record, err := h.inventoryService.GetInventoryByProductID(c.Request.Context(), productID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Inventory retrieved successfully", record)
}

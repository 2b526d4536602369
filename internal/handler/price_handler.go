package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Sethuso/product-management-system/internal/service"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// PriceHandler handles pricing-service HTTP endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler constructs a PriceHandler.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// UpsertPriceRequest is the create-or-update payload.
type UpsertPriceRequest struct {
	ProductID int64           `json:"productId" binding:"required"`
	Price     decimal.Decimal `json:"price"`
}

// UpsertPrice saves the price record for a product.
func (h *PriceHandler) UpsertPrice(c *gin.Context) {
	var req UpsertPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: productId is required")
		return
	}

	record, err := h.priceService.CreateOrUpdatePrice(c.Request.Context(), req.ProductID, req.Price)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Price saved successfully", record)
}

// GetPriceByProductID returns the price record for a product.
func (h *PriceHandler) GetPriceByProductID(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil || productID <= 0 {
		utils.Error(c, http.StatusBadRequest, "Query parameter 'productId' must be a positive integer")
		return
	}

	record, err := h.priceService.GetPriceByProductID(c.Request.Context(), productID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Price retrieved successfully", record)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sethuso/product-management-system/internal/utils"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// GetHealth returns a liveness payload.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, http.StatusOK, "OK", gin.H{
		"service": h.serviceName,
		"status":  "up",
	})
}

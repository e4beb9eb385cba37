package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
)

// HealthHandler answers load balancer health checks.
type HealthHandler struct{}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Get handles GET /health.
func (h *HealthHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

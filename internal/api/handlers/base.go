package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// Base provides shared functionality for repository-backed handlers.
type Base struct {
	repo storage.Repository
}

// NewBase creates a base handler with the given repository.
func NewBase(repo storage.Repository) *Base {
	return &Base{repo: repo}
}

// Error writes an error response with the given status code.
func (b *Base) Error(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Error(message))
}

// parseID parses the :id path parameter. Returns false after writing a
// 404 if the parameter is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, dto.Error(dto.MsgNotFound))
		return 0, false
	}
	return id, true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// StatsHandler handles aggregate reporting requests.
type StatsHandler struct {
	*Base
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{Base: NewBase(repo)}
}

// Get handles GET /api/stats with an optional ?year=YYYY filter.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Query("year"))
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

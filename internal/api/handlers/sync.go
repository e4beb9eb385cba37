package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/application/service"
)

// SyncHandler triggers and reports calendar reconciliation runs.
type SyncHandler struct {
	svc *service.SyncService
}

// NewSyncHandler creates a sync handler.
func NewSyncHandler(svc *service.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// Run handles POST /api/sync. The call blocks until the run finishes;
// a run that could not reach the feed reports 502 with the details.
func (h *SyncHandler) Run(c *gin.Context) {
	result := h.svc.Sync(c.Request.Context())
	if result.Error != "" {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Status handles GET /api/sync/status.
func (h *SyncHandler) Status(c *gin.Context) {
	result, at, ok := h.svc.LastRun()
	if !ok {
		c.JSON(http.StatusOK, dto.SyncStatusResponse{})
		return
	}
	c.JSON(http.StatusOK, dto.SyncStatusResponse{LastRun: &at, Result: &result})
}

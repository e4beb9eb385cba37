package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// RoutesHandler handles saved route template requests.
type RoutesHandler struct {
	*Base
}

// NewRoutesHandler creates a routes handler.
func NewRoutesHandler(repo storage.Repository) *RoutesHandler {
	return &RoutesHandler{Base: NewBase(repo)}
}

// List handles GET /api/saved-routes.
func (h *RoutesHandler) List(c *gin.Context) {
	routes, err := h.repo.ListRoutes()
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.ToSavedRoutesResponse(routes))
}

// Upsert handles POST /api/saved-routes.
func (h *RoutesHandler) Upsert(c *gin.Context) {
	var req dto.SavedRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Key == "" {
		h.Error(c, http.StatusBadRequest, dto.MsgKeyRequired)
		return
	}

	err := h.repo.UpsertRoute(storage.SavedRoute{
		Key:      req.Key,
		Client:   req.Client,
		Dest:     req.Dest,
		Route:    req.Route,
		Miles:    req.Miles,
		TripType: req.TripType,
		Trips:    req.Trips,
	})
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// Delete handles DELETE /api/saved-routes/:key. Deleting an unknown key
// succeeds.
func (h *RoutesHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteRoute(c.Param("key")); err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

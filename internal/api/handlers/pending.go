package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// PendingHandler handles the pending entry review workflow.
type PendingHandler struct {
	*Base
	now func() time.Time
}

// NewPendingHandler creates a pending handler.
func NewPendingHandler(repo storage.Repository) *PendingHandler {
	return &PendingHandler{Base: NewBase(repo), now: time.Now}
}

// List handles GET /api/pending. By default only open entries are
// returned; ?status=all includes approved and dismissed history.
func (h *PendingHandler) List(c *gin.Context) {
	status := storage.StatusPending
	switch c.Query("status") {
	case "", "pending":
	case "all":
		status = ""
	case "approved":
		status = storage.StatusApproved
	case "dismissed":
		status = storage.StatusDismissed
	default:
		h.Error(c, http.StatusBadRequest, "unknown status")
		return
	}

	entries, err := h.repo.ListPending(status)
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Update handles PATCH /api/pending/:id, correcting draft fields before
// approval.
func (h *PendingHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update storage.JobUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.repo.UpdatePending(id, update)
	switch {
	case errors.Is(err, storage.ErrNoFields):
		h.Error(c, http.StatusBadRequest, dto.MsgNothingToUpdate)
	case errors.Is(err, storage.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.MsgNotFound)
	case errors.Is(err, storage.ErrNotPending):
		h.Error(c, http.StatusConflict, dto.MsgNotPending)
	case err != nil:
		h.Error(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, entry)
	}
}

// Approve handles POST /api/pending/:id/approve and returns the created
// ledger entry.
func (h *PendingHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	job, err := h.repo.ApprovePending(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.MsgNotFound)
	case errors.Is(err, storage.ErrNotPending):
		h.Error(c, http.StatusConflict, dto.MsgNotPending)
	case errors.Is(err, storage.ErrZeroMiles):
		h.Error(c, http.StatusBadRequest, dto.MsgMilesRequired)
	case err != nil:
		h.Error(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, job)
	}
}

// Dismiss handles POST /api/pending/:id/dismiss.
func (h *PendingHandler) Dismiss(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.repo.DismissPending(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.MsgNotFound)
	case errors.Is(err, storage.ErrNotPending):
		h.Error(c, http.StatusConflict, dto.MsgNotPending)
	case err != nil:
		h.Error(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, dto.OK())
	}
}

// ApproveAll handles POST /api/pending/approve-all. Only entries with
// positive miles and a date no later than today qualify.
func (h *PendingHandler) ApproveAll(c *gin.Context) {
	today := h.now().Format("2006-01-02")
	count, err := h.repo.ApproveAll(today)
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.BulkResponse{OK: true, Count: count})
}

// DismissAll handles POST /api/pending/dismiss-all.
func (h *PendingHandler) DismissAll(c *gin.Context) {
	count, err := h.repo.DismissAll()
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.BulkResponse{OK: true, Count: count})
}

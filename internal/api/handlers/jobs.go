package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hms-dev/mileage-backend/internal/api/dto"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// JobsHandler handles ledger entry requests.
type JobsHandler struct {
	*Base
}

// NewJobsHandler creates a jobs handler.
func NewJobsHandler(repo storage.Repository) *JobsHandler {
	return &JobsHandler{Base: NewBase(repo)}
}

// List handles GET /api/jobs.
func (h *JobsHandler) List(c *gin.Context) {
	jobs, err := h.repo.ListJobs()
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Create handles POST /api/jobs. Direct ledger entries require positive
// miles; only the approval path may carry zero.
func (h *JobsHandler) Create(c *gin.Context) {
	var job storage.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if job.Miles <= 0 {
		h.Error(c, http.StatusBadRequest, dto.MsgMilesRequired)
		return
	}

	created, err := h.repo.CreateJob(job)
	if err != nil {
		h.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, created)
}

// Update handles PATCH /api/jobs/:id.
func (h *JobsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update storage.JobUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.repo.UpdateJob(id, update)
	switch {
	case errors.Is(err, storage.ErrNoFields):
		h.Error(c, http.StatusBadRequest, dto.MsgNothingToUpdate)
	case errors.Is(err, storage.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.MsgNotFound)
	case err != nil:
		h.Error(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, job)
	}
}

// Delete handles DELETE /api/jobs/:id.
func (h *JobsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.repo.DeleteJob(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		h.Error(c, http.StatusNotFound, dto.MsgNotFound)
	case err != nil:
		h.Error(c, http.StatusInternalServerError, err.Error())
	default:
		c.JSON(http.StatusOK, dto.OK())
	}
}

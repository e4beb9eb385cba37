package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms-dev/mileage-backend/internal/api/handlers"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJobsRouter(repo storage.Repository) *gin.Engine {
	h := handlers.NewJobsHandler(repo)
	r := gin.New()
	r.GET("/api/jobs", h.List)
	r.POST("/api/jobs", h.Create)
	r.PATCH("/api/jobs/:id", h.Update)
	r.DELETE("/api/jobs/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJobsList(t *testing.T) {
	repo := storage.NewMockRepository()
	_, err := repo.CreateJob(storage.Job{Client: "Acme Corp", Date: "2025-03-10", Miles: 12})
	require.NoError(t, err)

	rec := doJSON(t, newJobsRouter(repo), http.MethodGet, "/api/jobs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []storage.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme Corp", jobs[0].Client)
}

func TestJobsCreate(t *testing.T) {
	t.Run("creates a job", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodPost, "/api/jobs",
			`{"client":"Acme Corp","date":"2025-03-10","miles":12.5,"trip_type":"round"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var job storage.Job
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
		assert.NotZero(t, job.ID)
		assert.Equal(t, 12.5, job.Miles)
		assert.Equal(t, 1, job.Trips)
	})

	t.Run("rejects missing miles", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodPost, "/api/jobs",
			`{"client":"Acme Corp"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "miles required")
	})

	t.Run("rejects negative miles", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodPost, "/api/jobs",
			`{"client":"Acme Corp","miles":-3}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJobsUpdate(t *testing.T) {
	t.Run("applies partial update", func(t *testing.T) {
		repo := storage.NewMockRepository()
		created, err := repo.CreateJob(storage.Job{Client: "Acme Corp", Miles: 12, Notes: "old"})
		require.NoError(t, err)

		rec := doJSON(t, newJobsRouter(repo), http.MethodPatch, "/api/jobs/1", `{"notes":"new"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var job storage.Job
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
		assert.Equal(t, created.ID, job.ID)
		assert.Equal(t, "new", job.Notes)
		assert.Equal(t, "Acme Corp", job.Client)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		repo := storage.NewMockRepository()
		_, err := repo.CreateJob(storage.Job{Client: "Acme Corp", Miles: 12})
		require.NoError(t, err)

		rec := doJSON(t, newJobsRouter(repo), http.MethodPatch, "/api/jobs/1", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Nothing to update")
	})

	t.Run("unknown job is 404", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodPatch, "/api/jobs/99", `{"notes":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodPatch, "/api/jobs/abc", `{"notes":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestJobsDelete(t *testing.T) {
	t.Run("deletes a job", func(t *testing.T) {
		repo := storage.NewMockRepository()
		_, err := repo.CreateJob(storage.Job{Client: "Acme Corp", Miles: 12})
		require.NoError(t, err)

		rec := doJSON(t, newJobsRouter(repo), http.MethodDelete, "/api/jobs/1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		_, err = repo.GetJob(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown job is 404", func(t *testing.T) {
		repo := storage.NewMockRepository()
		rec := doJSON(t, newJobsRouter(repo), http.MethodDelete, "/api/jobs/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/repository"
)

// JobHandler handles job CRUD endpoints.
type JobHandler struct {
	repo *repository.JobRepository
}

// NewJobHandler creates a new job handler.
func NewJobHandler(repo *repository.JobRepository) *JobHandler {
	return &JobHandler{repo: repo}
}

// ListJobs handles GET /api/v1/jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

type createJobRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
	URL     string `json:"url" binding:"required"`
}

// CreateJob handles POST /api/v1/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields",
		})
		return
	}

	created, err := h.repo.Append(c.Request.Context(), domain.Job{
		Title:   req.Title,
		Company: req.Company,
		URL:     req.URL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid job URL",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetJob handles GET /api/v1/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, job)
}

// ResetJob handles POST /api/v1/jobs/:id/reset. It returns a terminal
// record to the pending state so it can be processed again.
func (h *JobHandler) ResetJob(c *gin.Context) {
	id := c.Param("id")
	err := h.repo.UpdateStatus(c.Request.Context(), id, domain.JobStatusPending)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Job cannot be reset in its current state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to reset job: " + err.Error(),
			})
		}
		return
	}

	job, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load job: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, job)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/processor"
	"github.com/applyflow/applyflow/internal/repository"
)

// ProcessHandler triggers pipeline runs.
type ProcessHandler struct {
	proc     *processor.Processor
	settings *config.SettingsStore
}

// NewProcessHandler creates a new process handler.
func NewProcessHandler(proc *processor.Processor, settings *config.SettingsStore) *ProcessHandler {
	return &ProcessHandler{proc: proc, settings: settings}
}

// ProcessAll handles POST /api/v1/process. Individual job failures are
// recorded on the jobs themselves and still yield a 200; only a fatal
// configuration error fails the request.
func (h *ProcessHandler) ProcessAll(c *gin.Context) {
	settings, err := h.settings.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read settings: " + err.Error(),
		})
		return
	}

	if err := h.proc.ProcessAll(c.Request.Context(), &settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process jobs: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ProcessJob handles POST /api/v1/jobs/:id/process.
func (h *ProcessHandler) ProcessJob(c *gin.Context) {
	settings, err := h.settings.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read settings: " + err.Error(),
		})
		return
	}

	job, err := h.proc.ProcessByID(c.Request.Context(), c.Param("id"), &settings)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
		case errors.Is(err, processor.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Job is not pending",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process job: " + err.Error(),
			})
		}
		return
	}
	c.JSON(http.StatusOK, job)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/notify"
	"github.com/applyflow/applyflow/internal/repository"
)

// SendHandler emails the generated materials for a job.
type SendHandler struct {
	mailer   *notify.Mailer
	settings *config.SettingsStore
}

// NewSendHandler creates a new send handler.
func NewSendHandler(mailer *notify.Mailer, settings *config.SettingsStore) *SendHandler {
	return &SendHandler{mailer: mailer, settings: settings}
}

// SendJob handles POST /api/v1/jobs/:id/send.
func (h *SendHandler) SendJob(c *gin.Context) {
	settings, err := h.settings.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read settings: " + err.Error(),
		})
		return
	}

	err = h.mailer.Send(c.Request.Context(), c.Param("id"), settings.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
		case errors.Is(err, notify.ErrNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Job has no generated materials yet",
			})
		case errors.Is(err, notify.ErrNotConfigured):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Email is not configured",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to send email: " + err.Error(),
			})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

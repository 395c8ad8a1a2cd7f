package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/config"
)

// SettingsHandler exposes the runtime settings document.
type SettingsHandler struct {
	store *config.SettingsStore
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(store *config.SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings handles GET /api/v1/settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read settings: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PutSettings handles PUT /api/v1/settings. The request body replaces the
// whole document.
func (h *SettingsHandler) PutSettings(c *gin.Context) {
	var settings config.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid settings document",
		})
		return
	}

	if err := h.store.Write(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save settings: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

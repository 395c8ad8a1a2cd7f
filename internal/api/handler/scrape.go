package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/api/middleware"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/search"
)

// ScrapeHandler runs a job search and imports new postings.
type ScrapeHandler struct {
	repo     *repository.JobRepository
	settings *config.SettingsStore

	// sources builds the source set for the current SerpAPI key,
	// overridable in tests.
	sources func(serpAPIKey string, log *logger.Logger) []search.Source
}

// NewScrapeHandler creates a new scrape handler.
func NewScrapeHandler(repo *repository.JobRepository, settings *config.SettingsStore) *ScrapeHandler {
	return &ScrapeHandler{
		repo:     repo,
		settings: settings,
		sources:  search.DefaultSources,
	}
}

type scrapeRequest struct {
	Query    string   `json:"query"`
	Location string   `json:"location"`
	Sources  []string `json:"sources"`
}

// Scrape handles POST /api/v1/scrape. Omitted query and location fall back
// to the saved search defaults. An empty body means defaults across the
// board.
func (h *ScrapeHandler) Scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	settings, err := h.settings.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read settings: " + err.Error(),
		})
		return
	}

	if req.Query == "" {
		req.Query = settings.Search.DefaultQuery
	}
	if req.Location == "" {
		req.Location = settings.Search.DefaultLocation
	}

	log := middleware.GetLogger(c)
	svc := search.NewService(h.repo, h.sources(settings.Search.SerpAPIKey, log), log)

	added, err := svc.ImportNew(c.Request.Context(), req.Query, req.Location, req.Sources)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to scrape jobs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"jobsAdded": len(added),
		"jobs":      added,
	})
}

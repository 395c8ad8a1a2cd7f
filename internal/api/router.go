package api

import (
	"github.com/gin-gonic/gin"

	"github.com/applyflow/applyflow/internal/api/handler"
	"github.com/applyflow/applyflow/internal/api/middleware"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/notify"
	"github.com/applyflow/applyflow/internal/processor"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/storage"
)

// Deps collects everything the router needs.
type Deps struct {
	Repo     *repository.JobRepository
	Proc     *processor.Processor
	Mailer   *notify.Mailer
	Settings *config.SettingsStore
	Log      *logger.Logger

	// ScreenshotDir serves local captures statically when non-empty.
	ScreenshotDir string
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps Deps, server config.ServerConfig) *gin.Engine {
	// Set Gin mode
	switch server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.CORS(server.CORS))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	jobHandler := handler.NewJobHandler(deps.Repo)
	processHandler := handler.NewProcessHandler(deps.Proc, deps.Settings)
	scrapeHandler := handler.NewScrapeHandler(deps.Repo, deps.Settings)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	sendHandler := handler.NewSendHandler(deps.Mailer, deps.Settings)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Local screenshots
	if deps.ScreenshotDir != "" {
		r.Static(storage.ScreenshotURLPrefix, deps.ScreenshotDir)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Jobs
		v1.GET("/jobs", jobHandler.ListJobs)
		v1.POST("/jobs", jobHandler.CreateJob)
		v1.GET("/jobs/:id", jobHandler.GetJob)
		v1.POST("/jobs/:id/reset", jobHandler.ResetJob)
		v1.POST("/jobs/:id/process", processHandler.ProcessJob)
		v1.POST("/jobs/:id/send", sendHandler.SendJob)

		// Settings
		v1.GET("/settings", settingsHandler.GetSettings)
		v1.PUT("/settings", settingsHandler.PutSettings)

		// Search and processing
		v1.POST("/scrape", scrapeHandler.Scrape)
		v1.POST("/process", processHandler.ProcessAll)
	}

	return r
}

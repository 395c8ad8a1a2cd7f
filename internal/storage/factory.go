package storage

import (
	"fmt"

	"github.com/applyflow/applyflow/internal/config"
)

// ScreenshotURLPrefix is the route local screenshots are served under.
const ScreenshotURLPrefix = "/screenshots"

// NewStore creates the ScreenshotStore selected by configuration.
func NewStore(cfg *config.StorageConfig) (ScreenshotStore, error) {
	switch cfg.Backend {
	case "local", "":
		return NewLocalStore(cfg.LocalDir, ScreenshotURLPrefix)
	case "s3":
		return NewS3Store(&S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Backend)
	}
}

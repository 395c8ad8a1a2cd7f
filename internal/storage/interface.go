package storage

import (
	"context"
	"io"
)

// ScreenshotStore persists captured page screenshots addressable by job id.
type ScreenshotStore interface {
	// Save stores the PNG bytes for a job and returns the storage key.
	Save(ctx context.Context, jobID string, png []byte) (string, error)

	// Open returns a reader over a previously saved screenshot.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the address a client can fetch the screenshot from.
	URL(key string) string

	// Delete removes the screenshot for a key.
	Delete(ctx context.Context, key string) error
}

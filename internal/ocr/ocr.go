package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/applyflow/applyflow/internal/config"
)

// ErrUnsupportedProvider is a fatal configuration error: an unrecognized OCR
// provider name must abort the run, never silently fall back.
var ErrUnsupportedProvider = errors.New("unsupported OCR provider")

// Extractor extracts text from an image.
type Extractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// New resolves the configured OCR backend once per run.
func New(cfg *config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "tesseract":
		return NewTesseractExtractor(), nil
	case "google":
		return NewVisionExtractor(cfg.APIKey, ""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
}

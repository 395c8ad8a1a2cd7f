package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractExtractor runs the local Tesseract engine. No API key required,
// which makes it the default backend.
type TesseractExtractor struct {
	language string
}

// NewTesseractExtractor creates an extractor using the English language pack.
func NewTesseractExtractor() *TesseractExtractor {
	return &TesseractExtractor{language: "eng"}
}

// ExtractText recognizes text in the image. A fresh client is created and
// closed per call; the engine holds native resources.
func (e *TesseractExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("failed to configure tesseract: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image into tesseract: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}
	return text, nil
}

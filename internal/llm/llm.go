// Package llm provides text generation over a closed set of interchangeable
// provider backends. Every backend satisfies the same contract: one prompt
// in, generated text out, with a ProviderError on any non-success response.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/applyflow/applyflow/internal/config"
)

// ErrUnsupportedProvider is a fatal configuration error: an unrecognized LLM
// provider name aborts the run at the factory boundary.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// ProviderError carries the upstream status and message of a failed backend
// call. Recoverable at job granularity.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generation parameters shared by all backends, matching the upstream
// defaults this service has always used.
const (
	maxTokens   = 2000
	temperature = 0.7
)

// New resolves the configured backend once per run.
func New(cfg *config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case "groq":
		return NewGroqGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL), nil
	case "together":
		return NewTogetherGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL), nil
	case "huggingface":
		return NewHuggingFaceGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
}

package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const togetherBaseURL = "https://api.together.xyz/v1"

// TogetherGenerator calls Together's plain completions endpoint. Unlike the
// chat-shaped backends, the prompt is sent as a single string and the text
// comes back directly in each choice.
type TogetherGenerator struct {
	client   *resty.Client
	model    string
	endpoint string
}

// NewTogetherGenerator creates a Together-backed generator. baseURL overrides
// the production endpoint; pass "" outside tests.
func NewTogetherGenerator(model, apiKey, baseURL string) *TogetherGenerator {
	if baseURL == "" {
		baseURL = togetherBaseURL
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	return &TogetherGenerator{
		client:   client,
		model:    model,
		endpoint: baseURL + "/completions",
	}
}

type togetherRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type togetherResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *TogetherGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := togetherRequest{
		Model:       g.model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp togetherResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(g.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call Together API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		message := string(httpResp.Body())
		if resp.Error != nil {
			message = resp.Error.Message
		}
		return "", &ProviderError{Provider: "together", StatusCode: httpResp.StatusCode(), Message: message}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: "together", StatusCode: httpResp.StatusCode(), Message: "no choices in response"}
	}
	return resp.Choices[0].Text, nil
}

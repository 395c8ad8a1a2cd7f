package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqGenerator calls Groq's OpenAI-compatible chat completions endpoint.
type GroqGenerator struct {
	client   *resty.Client
	model    string
	endpoint string
}

// NewGroqGenerator creates a Groq-backed generator. baseURL overrides the
// production endpoint; pass "" outside tests.
func NewGroqGenerator(model, apiKey, baseURL string) *GroqGenerator {
	if baseURL == "" {
		baseURL = groqBaseURL
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	return &GroqGenerator{
		client:   client,
		model:    model,
		endpoint: baseURL + "/chat/completions",
	}
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *GroqGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := groqRequest{
		Model:       g.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp groqResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(g.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call Groq API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		message := string(httpResp.Body())
		if resp.Error != nil {
			message = resp.Error.Message
		}
		return "", &ProviderError{Provider: "groq", StatusCode: httpResp.StatusCode(), Message: message}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: "groq", StatusCode: httpResp.StatusCode(), Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

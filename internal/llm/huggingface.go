package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFaceGenerator calls the Hugging Face inference API. The model name
// is part of the URL and the response is a bare array of generations.
type HuggingFaceGenerator struct {
	client   *resty.Client
	endpoint string
}

// NewHuggingFaceGenerator creates a Hugging Face-backed generator. baseURL
// overrides the production endpoint; pass "" outside tests.
func NewHuggingFaceGenerator(model, apiKey, baseURL string) *HuggingFaceGenerator {
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	return &HuggingFaceGenerator{
		client:   client,
		endpoint: baseURL + "/" + model,
	}
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
}

type huggingFaceGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func (g *HuggingFaceGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := huggingFaceRequest{
		Inputs: prompt,
		Parameters: huggingFaceParameters{
			MaxLength:   maxTokens,
			Temperature: temperature,
		},
	}

	var resp []huggingFaceGeneration
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(g.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call Hugging Face API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return "", &ProviderError{
			Provider:   "huggingface",
			StatusCode: httpResp.StatusCode(),
			Message:    string(httpResp.Body()),
		}
	}

	if len(resp) == 0 {
		return "", &ProviderError{Provider: "huggingface", StatusCode: httpResp.StatusCode(), Message: "empty generation list"}
	}
	return resp[0].GeneratedText, nil
}

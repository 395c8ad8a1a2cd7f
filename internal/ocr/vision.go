package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const visionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// VisionExtractor calls the Google Cloud Vision text-detection API.
type VisionExtractor struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// NewVisionExtractor creates a Vision-backed extractor. endpoint overrides
// the production API URL; pass "" outside tests.
func NewVisionExtractor(apiKey, endpoint string) *VisionExtractor {
	if endpoint == "" {
		endpoint = visionEndpoint
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	return &VisionExtractor{
		client:   client,
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
	} `json:"responses"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractText sends the image for TEXT_DETECTION and returns the full-page
// annotation. A well-formed response with no annotations yields an empty
// string, not an error.
func (e *VisionExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	req := visionRequest{
		Requests: []visionAnnotateRequest{
			{
				Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []visionFeature{{Type: "TEXT_DETECTION"}},
			},
		},
	}

	var resp visionResponse
	httpResp, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("key", e.apiKey).
		SetBody(req).
		SetResult(&resp).
		Post(e.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call Vision API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("Vision API returned error: %s", errorMsg)
	}

	if len(resp.Responses) == 0 || len(resp.Responses[0].TextAnnotations) == 0 {
		return "", nil
	}
	return resp.Responses[0].TextAnnotations[0].Description, nil
}

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/go-resty/resty/v2"
)

const (
	serpSourceID   = "google"
	serpSourceName = "Google Jobs"

	serpDefaultEndpoint = "https://serpapi.com/search"
	serpResultLimit     = 10
	serpTimeout         = 10 * time.Second
)

type serpResponse struct {
	JobsResults []serpJob `json:"jobs_results"`
}

type serpJob struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	ShareLink    string `json:"share_link"`
	RelatedLinks []struct {
		Link string `json:"link"`
	} `json:"related_links"`
	Salary             string `json:"salary"`
	DetectedExtensions struct {
		PostedAt     string `json:"posted_at"`
		ScheduleType string `json:"schedule_type"`
	} `json:"detected_extensions"`
}

// SerpAPISource fetches Google Jobs results through the SerpAPI search
// endpoint. Without an API key the source yields nothing rather than
// failing, so the remaining sources still run.
type SerpAPISource struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

// NewSerpAPISource creates a Google Jobs source using the given SerpAPI key.
func NewSerpAPISource(apiKey string, log *logger.Logger) *SerpAPISource {
	return &SerpAPISource{
		client:   resty.New().SetTimeout(serpTimeout),
		endpoint: serpDefaultEndpoint,
		apiKey:   apiKey,
		log:      log,
	}
}

func (s *SerpAPISource) SourceID() string {
	return serpSourceID
}

func (s *SerpAPISource) DisplayName() string {
	return serpSourceName
}

func (s *SerpAPISource) Fetch(ctx context.Context, query, location string) ([]domain.Candidate, error) {
	if s.apiKey == "" {
		s.log.Info("No SerpAPI key configured, skipping Google Jobs")
		return []domain.Candidate{}, nil
	}

	var result serpResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":   "google_jobs",
			"q":        query,
			"location": location,
			"api_key":  s.apiKey,
			"num":      fmt.Sprintf("%d", serpResultLimit),
		}).
		SetResult(&result).
		Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("serpapi returned status %d: %s", resp.StatusCode(), resp.String())
	}

	candidates := make([]domain.Candidate, 0, len(result.JobsResults))
	for _, job := range result.JobsResults {
		candidates = append(candidates, s.toCandidate(job, location))
	}
	return candidates, nil
}

// toCandidate maps a raw SerpAPI result into a candidate, substituting
// placeholders for any missing fields.
func (s *SerpAPISource) toCandidate(job serpJob, location string) domain.Candidate {
	c := domain.Candidate{
		Title:       job.Title,
		Company:     job.CompanyName,
		Location:    job.Location,
		Description: job.Description,
		URL:         job.ShareLink,
		Source:      serpSourceName,
		Salary:      job.Salary,
		JobType:     job.DetectedExtensions.ScheduleType,
		PostedDate:  job.DetectedExtensions.PostedAt,
	}
	if c.Title == "" {
		c.Title = "Unknown Title"
	}
	if c.Company == "" {
		c.Company = "Unknown Company"
	}
	if c.Location == "" {
		c.Location = location
	}
	if c.Description == "" {
		c.Description = "No description available"
	}
	if c.URL == "" && len(job.RelatedLinks) > 0 {
		c.URL = job.RelatedLinks[0].Link
	}
	if c.URL == "" {
		c.URL = "#"
	}
	if c.Salary == "" {
		c.Salary = "Not specified"
	}
	if c.JobType == "" {
		c.JobType = "Full-time"
	}
	if c.PostedDate == "" {
		c.PostedDate = time.Now().UTC().Format(time.RFC3339)
	}
	return c
}

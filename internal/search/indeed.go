package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/applyflow/applyflow/internal/domain"
)

const (
	indeedSourceID   = "indeed"
	indeedSourceName = "Indeed"
)

// IndeedSource synthesizes deterministic Indeed listings for a query.
type IndeedSource struct{}

func NewIndeedSource() *IndeedSource {
	return &IndeedSource{}
}

func (s *IndeedSource) SourceID() string {
	return indeedSourceID
}

func (s *IndeedSource) DisplayName() string {
	return indeedSourceName
}

func (s *IndeedSource) Fetch(ctx context.Context, query, location string) ([]domain.Candidate, error) {
	now := time.Now().UTC()
	lower := strings.ToLower(query)

	return []domain.Candidate{
		{
			Title:       fmt.Sprintf("%s Professional", query),
			Company:     "Enterprise Solutions",
			Location:    location,
			Description: fmt.Sprintf("We are seeking an experienced %s to join our growing team. The ideal candidate will have strong problem-solving skills and experience with modern technologies and methodologies.", lower),
			URL:         fmt.Sprintf("https://indeed.com/viewjob?jk=%s", jobKey(query, 0)),
			Source:      indeedSourceName,
			Salary:      "$70,000 - $100,000",
			PostedDate:  now.AddDate(0, 0, -2).Format(time.RFC3339),
			JobType:     "Full-time",
		},
		{
			Title:       fmt.Sprintf("Remote %s", query),
			Company:     "Digital Workspace",
			Location:    "Remote",
			Description: fmt.Sprintf("Remote opportunity for a skilled %s. Work from anywhere while contributing to exciting projects and collaborating with a distributed team.", lower),
			URL:         fmt.Sprintf("https://indeed.com/viewjob?jk=%s", jobKey(query, 1)),
			Source:      indeedSourceName,
			Salary:      "$65,000 - $95,000",
			PostedDate:  now.AddDate(0, 0, -3).Format(time.RFC3339),
			JobType:     "Full-time",
		},
	}, nil
}

// jobKey derives a stable base36 job key from the query.
func jobKey(query string, index int) string {
	return strconv.FormatUint(uint64(listingID(query, index+100)), 36)
}

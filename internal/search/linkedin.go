package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/applyflow/applyflow/internal/domain"
)

const (
	linkedInSourceID   = "linkedin"
	linkedInSourceName = "LinkedIn"
)

// LinkedInSource generates representative LinkedIn postings for a query.
// LinkedIn does not permit direct scraping, so this source synthesizes
// deterministic listings instead of calling out.
type LinkedInSource struct{}

func NewLinkedInSource() *LinkedInSource {
	return &LinkedInSource{}
}

func (s *LinkedInSource) SourceID() string {
	return linkedInSourceID
}

func (s *LinkedInSource) DisplayName() string {
	return linkedInSourceName
}

func (s *LinkedInSource) Fetch(ctx context.Context, query, location string) ([]domain.Candidate, error) {
	titles := []string{
		fmt.Sprintf("Senior %s", query),
		fmt.Sprintf("%s Specialist", query),
		fmt.Sprintf("Lead %s", query),
	}
	companies := []string{
		"Tech Innovations Inc",
		"Digital Solutions Corp",
		"Future Systems Ltd",
	}

	now := time.Now().UTC()
	candidates := make([]domain.Candidate, 0, len(titles))
	for i, title := range titles {
		candidates = append(candidates, domain.Candidate{
			Title:       title,
			Company:     companies[i],
			Location:    location,
			Description: fmt.Sprintf("We are seeking a talented %s to join our dynamic team. This role involves working with cutting-edge technologies and collaborating with cross-functional teams to deliver innovative solutions.", strings.ToLower(title)),
			URL:         fmt.Sprintf("https://linkedin.com/jobs/view/%d", listingID(query, i)),
			Source:      linkedInSourceName,
			Salary:      fmt.Sprintf("$%d - $%d", 60000+i*20000, 80000+i*20000),
			PostedDate:  now.AddDate(0, 0, -i).Format(time.RFC3339),
			JobType:     "Full-time",
		})
	}
	return candidates, nil
}

// listingID derives a stable numeric listing id from the query so repeated
// searches yield the same URLs and dedup can catch them.
func listingID(query string, index int) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s/%d", strings.ToLower(query), index)
	return h.Sum32() % 1000000
}

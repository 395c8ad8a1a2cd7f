package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repository"
)

// DefaultSources returns the full source set: Google Jobs through SerpAPI
// plus the synthetic LinkedIn and Indeed sources.
func DefaultSources(serpAPIKey string, log *logger.Logger) []Source {
	return []Source{
		NewSerpAPISource(serpAPIKey, log),
		NewLinkedInSource(),
		NewIndeedSource(),
	}
}

// Service aggregates candidates across sources and imports new ones into
// the job store.
type Service struct {
	repo    *repository.JobRepository
	sources []Source
	log     *logger.Logger
}

func NewService(repo *repository.JobRepository, sources []Source, log *logger.Logger) *Service {
	return &Service{repo: repo, sources: sources, log: log}
}

// Search fetches candidates from every selected source and deduplicates
// them by case-insensitive title and company, first occurrence winning.
// sourceIDs filters the source set; an empty list means all sources. A
// failing source is logged and skipped, it never sinks the whole search.
func (s *Service) Search(ctx context.Context, query, location string, sourceIDs []string) ([]domain.Candidate, error) {
	selected := s.selectSources(sourceIDs)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no matching sources for %v", sourceIDs)
	}

	s.log.WithFields(logger.Fields{
		"query":    query,
		"location": location,
	}).Info("Starting job search")

	var all []domain.Candidate
	for _, src := range selected {
		found, err := src.Fetch(ctx, query, location)
		if err != nil {
			s.log.WithField(logger.FieldSource, src.SourceID()).WithError(err).
				Error("Source fetch failed, skipping")
			continue
		}
		s.log.WithFields(logger.Fields{
			logger.FieldSource: src.SourceID(),
			logger.FieldCount:  len(found),
		}).Info("Source fetch completed")
		all = append(all, found...)
	}

	unique := dedupe(all)
	s.log.WithField(logger.FieldCount, len(unique)).Info("Job search completed")
	return unique, nil
}

// ImportNew searches and appends candidates the store has not seen before.
// A candidate is a duplicate when its URL matches an existing record or its
// title and company match one case-insensitively. Returns the created jobs.
func (s *Service) ImportNew(ctx context.Context, query, location string, sourceIDs []string) ([]domain.Job, error) {
	candidates, err := s.Search(ctx, query, location, sourceIDs)
	if err != nil {
		return nil, err
	}

	var added []domain.Job
	for _, c := range candidates {
		dup, err := s.isDuplicate(ctx, c)
		if err != nil {
			return added, err
		}
		if dup {
			continue
		}

		created, err := s.repo.Append(ctx, domain.Job{
			Title:       c.Title,
			Company:     c.Company,
			URL:         c.URL,
			Source:      c.Source,
			Location:    c.Location,
			Description: c.Description,
			Salary:      c.Salary,
			JobType:     c.JobType,
			PostedDate:  c.PostedDate,
		})
		if err != nil {
			s.log.WithFields(logger.Fields{
				"title":   c.Title,
				"company": c.Company,
			}).WithError(err).Warn("Skipping invalid candidate")
			continue
		}
		added = append(added, *created)
	}

	s.log.WithField(logger.FieldCount, len(added)).Info("Imported new jobs")
	return added, nil
}

func (s *Service) isDuplicate(ctx context.Context, c domain.Candidate) (bool, error) {
	byURL, err := s.repo.ExistsByURL(ctx, c.URL)
	if err != nil {
		return false, err
	}
	if byURL {
		return true, nil
	}
	return s.repo.ExistsByTitleCompany(ctx, c.Title, c.Company)
}

func (s *Service) selectSources(sourceIDs []string) []Source {
	if len(sourceIDs) == 0 {
		return s.sources
	}
	wanted := make(map[string]bool, len(sourceIDs))
	for _, id := range sourceIDs {
		wanted[strings.ToLower(id)] = true
	}
	var selected []Source
	for _, src := range s.sources {
		if wanted[src.SourceID()] {
			selected = append(selected, src)
		}
	}
	return selected
}

func dedupe(candidates []domain.Candidate) []domain.Candidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c.Title) + "\x00" + strings.ToLower(c.Company)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

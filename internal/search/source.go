// Package search aggregates job postings from pluggable sources and imports
// new ones into the store as pending records.
package search

import (
	"context"

	"github.com/applyflow/applyflow/internal/domain"
)

// Source defines the interface for job posting sources.
type Source interface {
	// SourceID returns the stable identifier for this source.
	SourceID() string

	// DisplayName returns a human-readable name for this source.
	DisplayName() string

	// Fetch returns candidate postings for a query and location. Sources
	// are best effort: a source that has nothing to offer returns an empty
	// slice, not an error.
	Fetch(ctx context.Context, query, location string) ([]domain.Candidate, error)
}

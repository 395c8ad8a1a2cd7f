// Package scheduler wires up the cron job that periodically imports new
// postings using the saved search settings.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/search"
)

// Scheduler wraps robfig/cron and manages the auto-scrape loop. The saved
// settings are re-read on every tick, so toggling autoScrape or changing
// the query takes effect without a restart.
type Scheduler struct {
	cron     *cron.Cron
	svc      *search.Service
	settings *config.SettingsStore
	log      *logger.Logger
}

// New creates a Scheduler that fires every intervalHours hours.
func New(svc *search.Service, settings *config.SettingsStore, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		svc:      svc,
		settings: settings,
		log:      log,
	}
}

// Start registers the scrape job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context, intervalHours int) error {
	if intervalHours <= 0 {
		return fmt.Errorf("invalid scrape interval: %dh", intervalHours)
	}
	spec := fmt.Sprintf("@every %dh", intervalHours)

	if _, err := s.cron.AddFunc(spec, func() { s.runScrape(ctx) }); err != nil {
		return fmt.Errorf("failed to register scrape job: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", spec).Info("Auto-scrape scheduler started")
	return nil
}

// Stop shuts down the scheduler and waits for a running scrape to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Auto-scrape scheduler stopped")
}

// runScrape imports new postings for the saved default query. Ticks fire
// regardless of the autoScrape flag so the setting can be flipped at
// runtime; a disabled flag makes the tick a no-op.
func (s *Scheduler) runScrape(ctx context.Context) {
	settings, err := s.settings.Read()
	if err != nil {
		s.log.WithError(err).Error("Auto-scrape skipped, settings unavailable")
		return
	}
	if !settings.Search.AutoScrape {
		return
	}

	added, err := s.svc.ImportNew(ctx, settings.Search.DefaultQuery, settings.Search.DefaultLocation, nil)
	if err != nil {
		s.log.WithError(err).Error("Auto-scrape failed")
		return
	}
	s.log.WithField(logger.FieldCount, len(added)).Info("Auto-scrape cycle complete")
}

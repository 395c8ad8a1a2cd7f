// Package processor drives pending jobs through the full pipeline: render
// and screenshot the application page, OCR the capture, then three dependent
// LLM calls producing a tailored resume, a cover letter and answers to any
// detected application questions.
package processor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/applyflow/applyflow/internal/capture"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/llm"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/ocr"
	"github.com/applyflow/applyflow/internal/prompts"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/storage"
)

// ResumePlaceholder substitutes for the resume text when the configured file
// cannot be read. A missing resume degrades the prompts, it does not fail
// the job.
const ResumePlaceholder = "Resume content not available"

// ErrNotPending is returned by ProcessByID when the record is not waiting
// for processing.
var ErrNotPending = errors.New("job is not pending")

// Processor runs the per-job pipeline. All processing is strictly
// sequential: no internal parallelism within a job and one job at a time in
// a batch, so a single renderer instance is alive at any moment.
type Processor struct {
	repo     *repository.JobRepository
	shots    storage.ScreenshotStore
	capturer capture.Capturer
	log      *logger.Logger

	// Provider factories, overridable in tests.
	newOCR func(*config.OCRConfig) (ocr.Extractor, error)
	newLLM func(*config.LLMConfig) (llm.Generator, error)
}

// New creates a Processor.
func New(repo *repository.JobRepository, shots storage.ScreenshotStore, capturer capture.Capturer, log *logger.Logger) *Processor {
	return &Processor{
		repo:     repo,
		shots:    shots,
		capturer: capturer,
		log:      log,
		newOCR:   ocr.New,
		newLLM:   llm.New,
	}
}

type providers struct {
	extractor ocr.Extractor
	generator llm.Generator
}

// resolve builds the provider set for one run. An unsupported provider name
// is a fatal configuration error and aborts the whole run.
func (p *Processor) resolve(settings *config.Settings) (providers, error) {
	extractor, err := p.newOCR(&settings.OCR)
	if err != nil {
		return providers{}, err
	}
	generator, err := p.newLLM(&settings.LLM)
	if err != nil {
		return providers{}, err
	}
	p.log.WithFields(logger.Fields{
		logger.FieldProvider: settings.LLM.Provider,
		"ocr_provider":       settings.OCR.Provider,
	}).Debug("Resolved providers")
	return providers{extractor: extractor, generator: generator}, nil
}

// ProcessOne runs the pipeline for a single job and returns the updated
// record. Job-level failures are captured into a terminal failed record and
// never propagate; the only returned errors are fatal configuration errors
// that make processing meaningless for any job.
func (p *Processor) ProcessOne(ctx context.Context, job domain.Job, settings *config.Settings) (domain.Job, error) {
	prov, err := p.resolve(settings)
	if err != nil {
		return job, err
	}
	return p.run(ctx, job, prov, settings), nil
}

// ProcessAll reads the store, filters pending records and processes each
// sequentially. A record is marked processing and persisted before work
// begins, so a crash mid-batch leaves an inspectable trail. An empty pending
// set is a no-op.
func (p *Processor) ProcessAll(ctx context.Context, settings *config.Settings) error {
	prov, err := p.resolve(settings)
	if err != nil {
		return err
	}

	pending, err := p.repo.ListByStatus(ctx, domain.JobStatusPending)
	if err != nil {
		return fmt.Errorf("failed to list pending jobs: %w", err)
	}
	if len(pending) == 0 {
		p.log.Info("No pending jobs to process")
		return nil
	}

	p.log.WithField(logger.FieldCount, len(pending)).Info("Starting batch processing")

	for _, job := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := p.repo.UpdateStatus(ctx, job.ID, domain.JobStatusProcessing); err != nil {
			p.log.WithField(logger.FieldJobID, job.ID).WithError(err).
				Error("Failed to claim job, skipping")
			continue
		}
		job.Status = domain.JobStatusProcessing

		updated := p.run(ctx, job, prov, settings)

		if err := p.repo.Replace(ctx, job.ID, updated); err != nil {
			p.log.WithField(logger.FieldJobID, job.ID).WithError(err).
				Error("Failed to persist processing outcome")
		}
	}

	p.log.Info("Batch processing completed")
	return nil
}

// ProcessByID runs the pipeline for one pending job identified by id and
// persists the outcome.
func (p *Processor) ProcessByID(ctx context.Context, id string, settings *config.Settings) (*domain.Job, error) {
	prov, err := p.resolve(settings)
	if err != nil {
		return nil, err
	}

	job, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, id, job.Status)
	}

	if err := p.repo.UpdateStatus(ctx, id, domain.JobStatusProcessing); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatusProcessing

	updated := p.run(ctx, *job, prov, settings)
	if err := p.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// run executes the pipeline steps in fixed order for one job. It never
// returns an error: any unrecovered step failure produces a failed record
// with all partial results dropped.
func (p *Processor) run(ctx context.Context, job domain.Job, prov providers, settings *config.Settings) domain.Job {
	log := p.log.WithFields(logger.Fields{
		logger.FieldJobID: job.ID,
		"title":           job.Title,
		"company":         job.Company,
	})
	log.Info("Processing job")

	fail := func(step string, err error) domain.Job {
		log.WithField("step", step).WithError(err).Error("Job processing failed")
		job.Status = domain.JobStatusFailed
		job.ClearResults()
		return job
	}

	// Render and capture. The capturer releases the browser on every path.
	png, err := p.capturer.Capture(ctx, job.URL)
	if err != nil {
		return fail("render", err)
	}

	screenshotKey, err := p.shots.Save(ctx, job.ID, png)
	if err != nil {
		return fail("screenshot", err)
	}

	pageText, err := prov.extractor.ExtractText(ctx, png)
	if err != nil {
		return fail("ocr", err)
	}

	resume := p.readResume(settings.Resume.Path, log)

	tailored, err := prov.generator.Generate(ctx, prompts.TailoredResume(job.Title, job.Company, pageText, resume))
	if err != nil {
		return fail("tailored_resume", err)
	}

	coverLetter, err := prov.generator.Generate(ctx, prompts.CoverLetter(job.Title, job.Company, pageText, resume))
	if err != nil {
		return fail("cover_letter", err)
	}

	questionsRaw, err := prov.generator.Generate(ctx, prompts.Questions(pageText, resume))
	if err != nil {
		return fail("questions", err)
	}
	questions := ParseQuestions(questionsRaw)

	job.Status = domain.JobStatusCompleted
	job.TailoredResume = tailored
	job.CoverLetter = coverLetter
	job.Questions = questions
	job.Screenshot = screenshotKey

	log.WithField(logger.FieldCount, len(questions)).Info("Job processing completed")
	return job
}

// readResume loads the base resume text, substituting a placeholder when the
// file is missing or unreadable.
func (p *Processor) readResume(path string, log *logger.Logger) string {
	if path == "" {
		return ResumePlaceholder
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("Resume unavailable, using placeholder")
		return ResumePlaceholder
	}
	return string(data)
}

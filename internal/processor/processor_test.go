package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/applyflow/applyflow/internal/capture"
	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/llm"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/ocr"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	png []byte
	err error

	// onCapture runs before each capture, letting tests observe what is
	// persisted while a job is mid-pipeline.
	onCapture func()
}

func (c *fakeCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	if c.onCapture != nil {
		c.onCapture()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.png, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

// scriptedGenerator replays canned completions in call order, optionally
// failing at a given 1-based call index.
type scriptedGenerator struct {
	responses []string
	failAt    int
	err       error
	prompts   []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	call := len(g.prompts)
	if g.failAt != 0 && call == g.failAt {
		return "", g.err
	}
	return g.responses[(call-1)%len(g.responses)], nil
}

type testEnv struct {
	proc      *Processor
	repo      *repository.JobRepository
	shots     *storage.LocalStore
	capturer  *fakeCapturer
	extractor *fakeExtractor
	generator *scriptedGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "jobs.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	repo := repository.NewJobRepository(db)

	shots, err := storage.NewLocalStore(t.TempDir(), "/screenshots")
	require.NoError(t, err)

	env := &testEnv{
		repo:     repo,
		shots:    shots,
		capturer: &fakeCapturer{png: []byte("png-bytes")},
		extractor: &fakeExtractor{
			text: "Senior Backend Engineer at Acme. Requirements: Go, SQL.",
		},
		generator: &scriptedGenerator{
			responses: []string{
				"tailored resume text",
				"cover letter text",
				`[{"question":"Why us?","answer":"Because..."}]`,
			},
		},
	}

	proc := New(repo, shots, env.capturer, logger.New(logger.DefaultConfig()))
	proc.newOCR = func(*config.OCRConfig) (ocr.Extractor, error) { return env.extractor, nil }
	proc.newLLM = func(*config.LLMConfig) (llm.Generator, error) { return env.generator, nil }
	env.proc = proc
	return env
}

func testSettings(resumePath string) *config.Settings {
	return &config.Settings{
		LLM:    config.LLMConfig{Provider: "groq", APIKey: "k", Model: "llama3-8b-8192"},
		OCR:    config.OCRConfig{Provider: "tesseract"},
		Resume: config.ResumeConfig{Path: resumePath},
	}
}

func seedPending(t *testing.T, repo *repository.JobRepository, title string) domain.Job {
	t.Helper()
	created, err := repo.Append(context.Background(), domain.Job{
		Title:   title,
		Company: "Acme",
		URL:     "https://acme.example/apply/" + title,
	})
	require.NoError(t, err)
	return *created
}

func TestProcessAllCompletesPendingJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	assert.Equal(t, "tailored resume text", got.TailoredResume)
	assert.Equal(t, "cover letter text", got.CoverLetter)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Why us?", got.Questions[0].Question)
	assert.NotEmpty(t, got.Screenshot)

	rc, err := env.shots.Open(ctx, got.Screenshot)
	require.NoError(t, err)
	rc.Close()
}

func TestProcessAllNoPendingIsNoop(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.proc.ProcessAll(context.Background(), testSettings("")))
	assert.Empty(t, env.generator.prompts)
}

func TestRenderFailureFailsJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")
	env.capturer.err = fmt.Errorf("%w: chrome exited", capture.ErrRender)

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Empty(t, got.TailoredResume)
	assert.Empty(t, got.CoverLetter)
	assert.Empty(t, got.Questions)
	assert.Empty(t, got.Screenshot)
	assert.Empty(t, env.generator.prompts, "no LLM calls after a render failure")
}

func TestOCRFailureFailsJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")
	env.extractor.err = errors.New("tesseract not installed")

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Empty(t, got.TailoredResume)
}

func TestQuestionsCallRejectionFailsJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")
	env.generator.failAt = 3
	env.generator.err = &llm.ProviderError{Provider: "groq", StatusCode: 429, Message: "rate limited"}

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Empty(t, got.TailoredResume, "partial results are dropped on failure")
	assert.Empty(t, got.CoverLetter)
}

func TestUnparseableQuestionsDegradeToEmptyList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")
	env.generator.responses[2] = "There are no application questions on this page."

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	require.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
}

func TestProcessAllIsSequentialAcrossJobs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := seedPending(t, env.repo, "backend")
	second := seedPending(t, env.repo, "frontend")

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	assert.Len(t, env.generator.prompts, 6, "three calls per job")
	for _, id := range []string{first.ID, second.ID} {
		got, err := env.repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCompleted, got.Status)
	}
}

func TestProcessAllPersistsProcessingBeforeWork(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := seedPending(t, env.repo, "backend")
	second := seedPending(t, env.repo, "frontend")

	// Snapshot every job's persisted status at the moment a capture
	// starts: the claimed job must already read processing, and no other
	// job may be mid-flight.
	var trails [][]domain.JobStatus
	env.capturer.onCapture = func() {
		all, err := env.repo.ListAll(ctx)
		require.NoError(t, err)
		statuses := make([]domain.JobStatus, len(all))
		for i, j := range all {
			statuses[i] = j.Status
		}
		trails = append(trails, statuses)
	}

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	require.Len(t, trails, 2)
	assert.Equal(t, []domain.JobStatus{domain.JobStatusProcessing, domain.JobStatusPending}, trails[0],
		"first job is claimed before work begins, second still pending")
	assert.Equal(t, []domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusProcessing}, trails[1],
		"first job fully settled before the second is claimed")

	for _, id := range []string{first.ID, second.ID} {
		got, err := env.repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCompleted, got.Status)
	}
}

func TestProcessAllSkipsNonPendingJobs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	done := seedPending(t, env.repo, "backend")
	require.NoError(t, env.repo.UpdateStatus(ctx, done.ID, domain.JobStatusProcessing))
	require.NoError(t, env.repo.UpdateStatus(ctx, done.ID, domain.JobStatusCompleted))
	pending := seedPending(t, env.repo, "frontend")

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings("")))

	assert.Len(t, env.generator.prompts, 3, "only the pending job is processed")
	got, err := env.repo.GetByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
}

func TestUnknownProviderAbortsBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")

	env.proc.newOCR = ocr.New
	env.proc.newLLM = llm.New
	settings := testSettings("")
	settings.OCR.Provider = "nope"

	err := env.proc.ProcessAll(ctx, settings)
	require.ErrorIs(t, err, ocr.ErrUnsupportedProvider)

	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, got.Status, "no job is touched on a configuration error")
}

func TestUnknownLLMProviderAbortsBatch(t *testing.T) {
	env := newTestEnv(t)
	env.proc.newLLM = llm.New
	settings := testSettings("")
	settings.LLM.Provider = "nope"

	err := env.proc.ProcessAll(context.Background(), settings)
	require.ErrorIs(t, err, llm.ErrUnsupportedProvider)
}

func TestMissingResumeUsesPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedPending(t, env.repo, "backend")

	require.NoError(t, env.proc.ProcessAll(ctx, testSettings(filepath.Join(t.TempDir(), "absent.txt"))))

	require.Len(t, env.generator.prompts, 3)
	assert.Contains(t, env.generator.prompts[0], ResumePlaceholder)
}

func TestProcessOne(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")

	updated, err := env.proc.ProcessOne(ctx, job, testSettings(""))
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, updated.Status)
	assert.Equal(t, "tailored resume text", updated.TailoredResume)
	assert.Equal(t, "cover letter text", updated.CoverLetter)

	// ProcessOne computes the outcome, it does not persist it.
	got, err := env.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, got.Status)
}

func TestProcessOneUnknownProvider(t *testing.T) {
	env := newTestEnv(t)
	job := seedPending(t, env.repo, "backend")

	env.proc.newLLM = llm.New
	settings := testSettings("")
	settings.LLM.Provider = "nope"

	_, err := env.proc.ProcessOne(context.Background(), job, settings)
	require.ErrorIs(t, err, llm.ErrUnsupportedProvider)
}

func TestProcessByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")

	updated, err := env.proc.ProcessByID(ctx, job.ID, testSettings(""))
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, updated.Status)
	assert.Equal(t, "tailored resume text", updated.TailoredResume)
}

func TestProcessByIDRejectsNonPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	job := seedPending(t, env.repo, "backend")
	require.NoError(t, env.repo.UpdateStatus(ctx, job.ID, domain.JobStatusProcessing))

	_, err := env.proc.ProcessByID(ctx, job.ID, testSettings(""))
	require.ErrorIs(t, err, ErrNotPending)
}

func TestProcessByIDUnknownJob(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.proc.ProcessByID(context.Background(), "no-such-id", testSettings(""))
	require.ErrorIs(t, err, repository.ErrJobNotFound)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrJobNotFound is returned when a lookup by id matches no record.
var ErrJobNotFound = errors.New("job not found")

// JobRepository owns all job record persistence.
//
// The job collection is a single shared mutable resource with no cross-process
// locking: a batch run and a single-job run overlapping can race on
// read-modify-write, last writer wins. Within one process, row-level updates
// keep the damage to individual records.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a repository bound to db.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// ListAll returns every job record ordered by creation time.
func (r *JobRepository) ListAll(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).Order("date_added ASC").Find(&jobs).Error
	return jobs, err
}

// ListByStatus returns jobs with the given status ordered by creation time.
func (r *JobRepository) ListByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("date_added ASC").
		Find(&jobs).Error
	return jobs, err
}

// GetByID returns the job with the given id or ErrJobNotFound.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Append validates and stores a new job record, assigning id, creation time
// and the initial pending status.
func (r *JobRepository) Append(ctx context.Context, job domain.Job) (*domain.Job, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	job.ID = uuid.New().String()
	job.Status = domain.JobStatusPending
	job.DateAdded = time.Now()
	job.ClearResults()

	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Replace overwrites the record with the given id. A missing id is logged and
// swallowed: the processor only replaces records it just read, so absence
// means an external writer removed it mid-run.
func (r *JobRepository) Replace(ctx context.Context, id string, job domain.Job) error {
	job.ID = id
	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "date_added").
		Updates(&job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		logger.FromContext(ctx).WithField(logger.FieldJobID, id).
			Warn("Replace skipped: job id not found")
	}
	return nil
}

// UpdateStatus persists a status transition for the given job, enforcing the
// lifecycle state machine.
func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !job.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, job.Status, status)
	}
	return r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ExistsByURL reports whether any stored job has the exact URL.
func (r *JobRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("url = ?", url).
		Count(&count).Error
	return count > 0, err
}

// ExistsByTitleCompany reports whether any stored job matches the
// case-insensitive (title, company) pair.
func (r *JobRepository) ExistsByTitleCompany(ctx context.Context, title, company string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("LOWER(title) = ? AND LOWER(company) = ?",
			strings.ToLower(title), strings.ToLower(company)).
		Count(&count).Error
	return count > 0, err
}

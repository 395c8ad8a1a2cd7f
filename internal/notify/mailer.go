// Package notify emails the generated application materials for a job.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/domain"
	"github.com/applyflow/applyflow/internal/logger"
	"github.com/applyflow/applyflow/internal/repository"
	"github.com/applyflow/applyflow/internal/storage"
)

var (
	// ErrNotCompleted is returned when the job has no generated materials
	// to send yet.
	ErrNotCompleted = errors.New("job is not completed")

	// ErrNotConfigured is returned when the SMTP settings are incomplete.
	ErrNotConfigured = errors.New("email is not configured")
)

// Mailer sends the tailored resume, cover letter and question answers for a
// completed job, with the page screenshot attached.
type Mailer struct {
	repo  *repository.JobRepository
	shots storage.ScreenshotStore
	log   *logger.Logger

	// send delivers a composed message, overridable in tests.
	send func(cfg config.EmailConfig, m *gomail.Message) error
}

func NewMailer(repo *repository.JobRepository, shots storage.ScreenshotStore, log *logger.Logger) *Mailer {
	return &Mailer{
		repo:  repo,
		shots: shots,
		log:   log,
		send: func(cfg config.EmailConfig, m *gomail.Message) error {
			return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password).DialAndSend(m)
		},
	}
}

// Send emails the materials for one completed job using the given SMTP
// settings.
func (m *Mailer) Send(ctx context.Context, jobID string, cfg config.EmailConfig) error {
	if cfg.Host == "" || cfg.From == "" || cfg.To == "" {
		return ErrNotConfigured
	}

	job, err := m.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status != domain.JobStatusCompleted {
		return fmt.Errorf("%w: %s is %s", ErrNotCompleted, jobID, job.Status)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.From)
	msg.SetHeader("To", cfg.To)
	msg.SetHeader("Subject", fmt.Sprintf("Application materials: %s at %s", job.Title, job.Company))
	msg.SetBody("text/plain", composeBody(job))

	if job.Screenshot != "" {
		msg.Attach(fmt.Sprintf("%s.png", job.ID), gomail.SetCopyFunc(func(w io.Writer) error {
			rc, err := m.shots.Open(ctx, job.Screenshot)
			if err != nil {
				return err
			}
			defer rc.Close()
			_, err = io.Copy(w, rc)
			return err
		}))
	}

	if err := m.send(cfg, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.WithField(logger.FieldJobID, job.ID).Info("Application email sent")
	return nil
}

func composeBody(job *domain.Job) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Application materials for %s at %s\n", job.Title, job.Company)
	fmt.Fprintf(&b, "Posting: %s\n\n", job.URL)

	b.WriteString("=== Cover Letter ===\n\n")
	b.WriteString(job.CoverLetter)
	b.WriteString("\n\n=== Tailored Resume ===\n\n")
	b.WriteString(job.TailoredResume)

	if len(job.Questions) > 0 {
		b.WriteString("\n\n=== Application Questions ===\n")
		for i, q := range job.Questions {
			fmt.Fprintf(&b, "\n%d. %s\n%s\n", i+1, q.Question, q.Answer)
		}
	}

	b.WriteString("\n")
	return b.String()
}

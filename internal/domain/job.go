package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/url"
	"time"
)

// JobStatus represents the lifecycle state of a tracked job application.
// Values include JobStatusPending, JobStatusProcessing, JobStatusCompleted,
// and JobStatusFailed.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status admits no further automatic transition.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. Terminal states only leave via an explicit external reset to pending.
func (s JobStatus) CanTransition(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing
	case JobStatusProcessing:
		return next == JobStatusCompleted || next == JobStatusFailed
	case JobStatusCompleted, JobStatusFailed:
		return next == JobStatusPending
	default:
		return false
	}
}

// Question is one detected application question with its generated answer.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionList stores an ordered question/answer sequence as a JSON column.
type QuestionList []Question

// Value implements driver.Valuer for database serialization.
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database deserialization.
func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan QuestionList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, q)
}

// Job represents one tracked application opportunity. Title, Company and URL
// are set at creation; provenance fields only appear on scraped jobs; result
// fields are populated only when the job reaches JobStatusCompleted.
type Job struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Company   string    `gorm:"type:text;not null" json:"company"`
	URL       string    `gorm:"type:text;not null;index:idx_jobs_url" json:"url"`
	Status    JobStatus `gorm:"type:text;index:idx_jobs_status;default:pending" json:"status"`
	DateAdded time.Time `json:"dateAdded"`

	// Provenance, informational only. Never read by the processor.
	Source      string `gorm:"type:text" json:"source,omitempty"`
	Location    string `gorm:"type:text" json:"location,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Salary      string `gorm:"type:text" json:"salary,omitempty"`
	JobType     string `gorm:"type:text" json:"jobType,omitempty"`
	PostedDate  string `gorm:"type:text" json:"postedDate,omitempty"`

	// Results, present only on completed jobs.
	TailoredResume string       `gorm:"type:text" json:"tailoredResume,omitempty"`
	CoverLetter    string       `gorm:"type:text" json:"coverLetter,omitempty"`
	Questions      QuestionList `gorm:"type:text" json:"questions"`
	Screenshot     string       `gorm:"type:text" json:"screenshot,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string {
	return "jobs"
}

// ErrInvalidURL is returned when a job URL is not an absolute URL.
var ErrInvalidURL = errors.New("invalid job URL")

// ErrInvalidTransition is returned for a status change the lifecycle state
// machine does not permit.
var ErrInvalidTransition = errors.New("illegal status transition")

// Validate checks the fields required at creation time.
func (j *Job) Validate() error {
	if j.Title == "" || j.Company == "" || j.URL == "" {
		return errors.New("title, company and url are required")
	}
	u, err := url.Parse(j.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// ClearResults drops all generated artifacts from the record. Called when a
// job fails so no partial output survives. Questions resets to an empty
// list, never nil, so the field always serializes as an array.
func (j *Job) ClearResults() {
	j.TailoredResume = ""
	j.CoverLetter = ""
	j.Questions = QuestionList{}
	j.Screenshot = ""
}

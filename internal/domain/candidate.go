package domain

// Candidate is an unvalidated job record produced by a search source. It
// becomes a Job only after passing the store-level dedup check.
type Candidate struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	PostedDate  string `json:"posted_date"`
}

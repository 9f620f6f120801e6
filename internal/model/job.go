package model

import (
	"context"
	"time"
)

// Source identifies which job board a posting came from.
type Source string

const (
	SourceRemoteOK       Source = "remoteok"
	SourceWeWorkRemotely Source = "weworkremotely"
	SourceRemotive       Source = "remotive"
	SourceJobicy         Source = "jobicy"
)

// Unified representation of a job posting from any source.
// Immutable once created; ID doubles as the dedup key.
type Job struct {
	ID          string    `json:"id"`          // "<source>-<nativeID>", unique across the run
	Title       string    `json:"title"`       // job title
	Company     string    `json:"company"`     // company name
	Description string    `json:"description"` // full description, truncated only by consumers
	URL         string    `json:"url"`         // direct link to the original posting
	PostedAt    time.Time `json:"postedAt"`    // derived from the source's native time representation
	Source      Source    `json:"source"`      // which adapter produced this job
}

// AnalyzedJob is a Job plus the scoring oracle's verdict. It is only ever
// constructed whole: a record with a score but no reason does not exist.
type AnalyzedJob struct {
	Job
	Score  int    `json:"score"`  // 1-10 inclusive
	Reason string `json:"reason"` // non-empty rationale from the oracle
}

// CandidateProfile describes the person jobs are scored against.
// Read-only for the pipeline; fed into prompt construction.
type CandidateProfile struct {
	Summary    string   `yaml:"summary"`
	Skills     []string `yaml:"skills"`
	Location   string   `yaml:"location"`
	RemoteOnly bool     `yaml:"remote_only"`
	Industries []string `yaml:"industries"`
}

// SourceAdapter fetches postings from one job board in canonical form.
// Error behavior is a per-adapter policy (see the source package registry).
type SourceAdapter interface {
	Name() Source
	FetchJobs(ctx context.Context) ([]Job, error)
}

// ProcessedStore is the persistent set of job IDs that have already been
// through scoring. Load preserves insertion order.
type ProcessedStore interface {
	Load() ([]string, error)
	Has(id string) (bool, error)
	Add(id string) error
	Clear() error
}

// Notifier delivers scored jobs downstream. Implementations own their
// delivery semantics (pacing, retries); the pipeline only sequences calls.
type Notifier interface {
	Deliver(job AnalyzedJob) error
	DeliverBatch(jobs []AnalyzedJob) error
}

// JobAnalyzer scores a job against the candidate profile via the scoring
// oracle. It never silently degrades: any transport, empty-content, or
// validation failure surfaces as an error.
type JobAnalyzer interface {
	Analyze(ctx context.Context, job Job, profile CandidateProfile) (AnalyzedJob, error)
}

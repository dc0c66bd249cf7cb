package pipeline

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/zeebo/blake3"
)

// JobStatus represents the state of an ingestion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusBuilding   JobStatus = "building"
	StatusStoring    JobStatus = "storing"
	StatusIndexing   JobStatus = "indexing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single layout ingestion.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	LayoutID string `json:"layout_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`
	Title  string    `json:"title"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	Force       bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	rawDoc []byte
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalRows   int      `json:"total_rows"`
	RowsIndexed int      `json:"rows_indexed"`
	Controls    int      `json:"controls"`
	Errors      []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrRowsIndexed atomically increments the indexed-row count.
func (j *Job) IncrRowsIndexed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.RowsIndexed++
	j.UpdatedAt = time.Now()
}

// SetCounts records the totals derived from the built model.
func (j *Job) SetCounts(rows, controls int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalRows = rows
	j.Progress.Controls = controls
	j.UpdatedAt = time.Now()
}

// SetContentHash records the layout's content hash.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
	j.UpdatedAt = time.Now()
}

// SetRawDoc sets the raw layout bytes for processing.
func (j *Job) SetRawDoc(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.rawDoc = data
}

// RawDoc returns the raw layout bytes.
func (j *Job) RawDoc() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rawDoc
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	LayoutID    string    `json:"layout_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		LayoutID:    j.LayoutID,
		Status:      j.Status,
		Phase:       j.Phase,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		Progress: Progress{
			TotalRows:   j.Progress.TotalRows,
			RowsIndexed: j.Progress.RowsIndexed,
			Controls:    j.Progress.Controls,
			Errors:      errs,
		},
	}
}

// ContentHashHex computes the BLAKE3 hash of content and returns it as a
// hex string.
func ContentHashHex(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

package workers

import (
	"sync"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a clip job.
type JobStatus string

const (
	StatusQueued  JobStatus = "queued"
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusFailed  JobStatus = "failed"
)

// Job is one clip-generation request moving through the worker.
type Job struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	SmartCrop bool      `json:"smartCrop"`
	Dynamic   bool      `json:"dynamic"`
	Caption   bool      `json:"caption"`
	Status    JobStatus `json:"status"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Store tracks job state for status lookups. Safe for concurrent use by
// the worker goroutine and request handlers.
type Store struct {
	mu    sync.RWMutex
	jobs  map[string]*Job
	queue chan string
}

// NewStore creates a store with a bounded submission queue.
func NewStore(queueSize int) *Store {
	return &Store{
		jobs:  make(map[string]*Job),
		queue: make(chan string, queueSize),
	}
}

// Submit registers a new job and enqueues it. Returns the job ID, or
// false when the queue is full.
func (s *Store) Submit(job Job) (string, bool) {
	job.ID = uuid.NewString()
	job.Status = StatusQueued

	s.mu.Lock()
	s.jobs[job.ID] = &job
	s.mu.Unlock()

	select {
	case s.queue <- job.ID:
		return job.ID, true
	default:
		s.mu.Lock()
		delete(s.jobs, job.ID)
		s.mu.Unlock()
		return "", false
	}
}

// Get returns a snapshot of a job by ID.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (s *Store) update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}

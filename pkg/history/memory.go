package history

import (
	"context"
	"sync"

	"github.com/matzehuels/pixelflex/pkg/errors"
)

// MemoryStore keeps jobs in memory, bounded to the most recent entries.
// Suitable for single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    []*Job // newest first
	maxJobs int
}

const defaultMaxJobs = 1000

// NewMemoryStore creates an in-memory store. A non-positive maxJobs uses
// the default bound of 1000 entries.
func NewMemoryStore(maxJobs int) *MemoryStore {
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}
	return &MemoryStore{maxJobs: maxJobs}
}

// Record persists a job, evicting the oldest entry when full.
func (s *MemoryStore) Record(ctx context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "job must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append([]*Job{job}, s.jobs...)
	if len(s.jobs) > s.maxJobs {
		s.jobs = s.jobs[:s.maxJobs]
	}
	return nil
}

// Get retrieves a job by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.ID == id {
			cp := *job
			return &cp, nil
		}
	}
	return nil, notFound(id)
}

// Recent returns up to limit jobs, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.jobs) {
		limit = len(s.jobs)
	}
	out := make([]*Job, limit)
	for i := 0; i < limit; i++ {
		cp := *s.jobs[i]
		out[i] = &cp
	}
	return out, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

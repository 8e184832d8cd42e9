package paper

import (
	"sync"
	"time"
)

// Registry is the in-memory source of truth for in-flight and completed
// conversion jobs, keyed by paper ID. It holds at most one Job per paper.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*Job),
	}
}

// Get returns a copy of the job for the given paper, if one exists.
func (r *Registry) Get(paperID string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[paperID]
	if !ok {
		return nil, false
	}
	cp := *j
	return &cp, true
}

// Reserve atomically creates a job in the downloading state if none exists
// for the paper. It returns a copy of the job and whether this call created
// it. Concurrent first requests for the same paper collapse into one job.
func (r *Registry) Reserve(paperID string) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if j, ok := r.jobs[paperID]; ok {
		cp := *j
		return &cp, false
	}

	j := &Job{
		PaperID:   paperID,
		Status:    StatusDownloading,
		StartedAt: time.Now().UTC(),
	}
	r.jobs[paperID] = j
	cp := *j
	return &cp, true
}

// TransitionOption mutates a job during a transition.
type TransitionOption func(*Job)

// WithError records a failure message on the job.
func WithError(msg string) TransitionOption {
	return func(j *Job) { j.Error = msg }
}

// Transition moves the job for paperID to the given status. It is a safe
// no-op when the job does not exist or has already reached a terminal
// status. Entering a terminal status sets CompletedAt exactly once; entering
// success clears any earlier error.
func (r *Registry) Transition(paperID string, status Status, opts ...TransitionOption) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[paperID]
	if !ok || j.Status.Terminal() {
		return false
	}

	j.Status = status
	if status == StatusSuccess {
		j.Error = ""
	}
	for _, opt := range opts {
		opt(j)
	}
	if status.Terminal() && j.CompletedAt == nil {
		now := time.Now().UTC()
		j.CompletedAt = &now
	}
	return true
}

package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory JobStore. It backs the service when no
// database path is configured and keeps tests free of filesystem state.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    map[string]Job
	reports map[string]string
}

var _ JobStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[string]Job),
		reports: make(map[string]string),
	}
}

func (m *MemoryStore) CreateJob(_ context.Context, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Error = ""
	m.jobs[job.ID] = job
	return nil
}

func (m *MemoryStore) UpdateJob(_ context.Context, jobID, status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("update job %s: %w", jobID, ErrNotFound)
	}
	job.Status = status
	job.Error = errMsg
	job.UpdatedAt = time.Now()
	m.jobs[jobID] = job
	return nil
}

func (m *MemoryStore) StoreReport(_ context.Context, jobID, report string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[jobID] = report
	return nil
}

func (m *MemoryStore) GetJob(_ context.Context, jobID string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	return job, nil
}

func (m *MemoryStore) GetReport(_ context.Context, jobID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[jobID]
	if !ok {
		return "", fmt.Errorf("report %s: %w", jobID, ErrNotFound)
	}
	return report, nil
}

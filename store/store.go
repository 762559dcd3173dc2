// Package store persists lead generation jobs and reports. Persistence is an
// optional collaborator: the pipeline and server operate correctly with a nil
// store, falling back to in-memory job state.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a job or report does not exist.
var ErrNotFound = errors.New("not found")

// Job is one lead generation job record.
type Job struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	TargetCustomers   string    `json:"target_customers"`
	OutreachChannels  string    `json:"outreach_channels"`
	BusinessType      string    `json:"business_type,omitempty"`
	Location          string    `json:"location,omitempty"`
	TargetDescription string    `json:"target_description,omitempty"`
	Error             string    `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// JobStore provides CRUD access to jobs and their reports.
type JobStore interface {
	CreateJob(ctx context.Context, job Job) error
	UpdateJob(ctx context.Context, jobID, status, errMsg string) error
	StoreReport(ctx context.Context, jobID, report string) error
	GetJob(ctx context.Context, jobID string) (Job, error)
	GetReport(ctx context.Context, jobID string) (string, error)
}

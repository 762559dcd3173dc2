package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore persists jobs and reports in a single SQLite database file.
// SQLite keeps the service dependency-free on the infrastructure side: one
// file on disk, no external database process.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

var _ JobStore = (*SQLiteStore)(nil)

// Open opens or creates the job database at dbPath. Parent directories are
// created as needed.
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		target_customers TEXT NOT NULL,
		outreach_channels TEXT NOT NULL,
		business_type TEXT,
		location TEXT,
		target_description TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
	CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);

	CREATE TABLE IF NOT EXISTS reports (
		job_id TEXT PRIMARY KEY REFERENCES jobs(id),
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// CreateJob inserts a new job record. The same job ID may be resubmitted;
// the record is replaced and its state reset.
func (s *SQLiteStore) CreateJob(ctx context.Context, job Job) error {
	query := `
	INSERT INTO jobs (id, status, target_customers, outreach_channels, business_type, location, target_description)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		target_customers = excluded.target_customers,
		outreach_channels = excluded.outreach_channels,
		business_type = excluded.business_type,
		location = excluded.location,
		target_description = excluded.target_description,
		error = '',
		updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.db.ExecContext(ctx, query,
		job.ID, job.Status, job.TargetCustomers, job.OutreachChannels,
		job.BusinessType, job.Location, job.TargetDescription)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// UpdateJob sets the status and error message of an existing job.
func (s *SQLiteStore) UpdateJob(ctx context.Context, jobID, status, errMsg string) error {
	query := `
	UPDATE jobs SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query, status, errMsg, jobID)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update job %s: %w", jobID, ErrNotFound)
	}
	return nil
}

// StoreReport stores the final markdown report for a job, replacing any
// earlier report with the same job ID.
func (s *SQLiteStore) StoreReport(ctx context.Context, jobID, report string) error {
	query := `
	INSERT INTO reports (job_id, content)
	VALUES (?, ?)
	ON CONFLICT(job_id) DO UPDATE SET
		content = excluded.content,
		created_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, jobID, report); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (Job, error) {
	query := `
	SELECT id, status, target_customers, outreach_channels,
	       COALESCE(business_type, ''), COALESCE(location, ''),
	       COALESCE(target_description, ''), COALESCE(error, ''),
	       created_at, updated_at
	FROM jobs WHERE id = ?
	`
	var job Job
	var created, updated string
	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.Status, &job.TargetCustomers, &job.OutreachChannels,
		&job.BusinessType, &job.Location, &job.TargetDescription, &job.Error,
		&created, &updated)
	if err == sql.ErrNoRows {
		return Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return Job{}, fmt.Errorf("get job: %w", err)
	}
	job.CreatedAt = parseTimestamp(created)
	job.UpdatedAt = parseTimestamp(updated)
	return job, nil
}

// GetReport retrieves the stored report for a job.
func (s *SQLiteStore) GetReport(ctx context.Context, jobID string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM reports WHERE job_id = ?`, jobID).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("report %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get report: %w", err)
	}
	return content, nil
}

// timestampFormats covers the formats SQLite may return depending on how the
// value was written.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
}

func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

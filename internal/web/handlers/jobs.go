package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/contact-album/internal/resolve"
	"github.com/kozaktomas/contact-album/internal/run"
)

// JobStatus represents the status of an async resolution job.
type JobStatus string

// JobStatus constants define the lifecycle states of an async job.
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job is one resolution run started through the API. Exactly one of
// FolderResult or PhotoSummary is set once the job completes, depending on
// its mode.
type Job struct {
	ID          string     `json:"id"`
	Mode        string     `json:"mode"`
	Status      JobStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	Output      string     `json:"output,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	FolderResult *resolve.FolderResult `json:"folder_result,omitempty"`
	PhotoSummary *run.PhotosSummary    `json:"photo_summary,omitempty"`
}

// JobManager tracks async jobs in memory. One manager lives for the server
// lifetime; jobs are never evicted, matching the single-user tool scope.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]*Job)}
}

// Create registers a new pending job and returns its ID.
func (m *JobManager) Create(mode, output string) string {
	jobID := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[jobID] = &Job{
		ID:        jobID,
		Mode:      mode,
		Status:    JobStatusPending,
		Output:    output,
		StartedAt: time.Now(),
	}
	return jobID
}

// Get returns a snapshot of a job, or false if the ID is unknown.
func (m *JobManager) Get(jobID string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// SetRunning marks a job as started.
func (m *JobManager) SetRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Status = JobStatusRunning
	}
}

// Complete stores a finished job's result.
func (m *JobManager) Complete(jobID string, folders *resolve.FolderResult, photos *run.PhotosSummary) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Status = JobStatusCompleted
		job.CompletedAt = &now
		job.FolderResult = folders
		job.PhotoSummary = photos
	}
}

// Fail marks a job as failed with an error message.
func (m *JobManager) Fail(jobID string, err error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		job.Status = JobStatusFailed
		job.CompletedAt = &now
		job.Error = err.Error()
	}
}

// Package scheduler runs the appointment reminder sweep: a trigger that
// periodically lists due reminders and a small worker pool that sends them
// with retries.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/domain/scheduling"
)

// JobStatus represents the status of a reminder job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusSkipped JobStatus = "SKIPPED"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job sends the reminder of one appointment
type Job struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	AppointmentID uuid.UUID
	Status        JobStatus
	Error         string
	StartedAt     *time.Time
	CompletedAt   *time.Time
	RetryCount    int
	MaxRetries    int
	NextRetryAt   *time.Time
}

// NewJob creates a pending job for candidate
func NewJob(candidate scheduling.ReminderCandidate, maxRetries int) *Job {
	return &Job{
		ID:            uuid.New(),
		TenantID:      candidate.TenantID,
		AppointmentID: candidate.AppointmentID,
		Status:        JobStatusPending,
		MaxRetries:    maxRetries,
	}
}

// Candidate returns the appointment the job is about
func (j *Job) Candidate() scheduling.ReminderCandidate {
	return scheduling.ReminderCandidate{TenantID: j.TenantID, AppointmentID: j.AppointmentID}
}

// Start marks the job as running
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Skip marks a job whose reminder was no longer due
func (j *Job) Skip() {
	now := time.Now()
	j.Status = JobStatusSkipped
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// ShouldRetry returns true if the job should be retried
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry schedules the job for retry
func (j *Job) ScheduleRetry(delay time.Duration) {
	j.RetryCount++
	j.Status = JobStatusPending
	nextRetry := time.Now().Add(delay)
	j.NextRetryAt = &nextRetry
	j.Error = ""
}

// JobExecutor executes reminder jobs. sent is false when the reminder was
// no longer due.
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) (sent bool, err error)
}

// JobObserver is told about every job that reached a final state
type JobObserver func(job *Job)

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	MaxConcurrentJobs int
	QueueSize         int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
}

// DefaultSchedulerConfig returns default scheduler configuration
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxConcurrentJobs: 2,
		QueueSize:         500,
		JobTimeout:        30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        30 * time.Second,
	}
}

func (c SchedulerConfig) validate() error {
	if c.MaxConcurrentJobs < 1 {
		return fmt.Errorf("%w: max concurrent jobs must be positive", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidConfig)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Scheduler runs reminder jobs on a fixed pool of workers. At most one job
// per appointment is queued or running at any time.
type Scheduler struct {
	config   SchedulerConfig
	executor JobExecutor
	logger   *zap.Logger
	observer JobObserver

	jobs      chan *Job
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	queued    map[uuid.UUID]struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config SchedulerConfig, executor JobExecutor, logger *zap.Logger) (*Scheduler, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *Job, config.QueueSize),
		queued:   make(map[uuid.UUID]struct{}),
	}, nil
}

// OnJobDone registers an observer for finished jobs
func (s *Scheduler) OnJobDone(observer JobObserver) {
	s.observer = observer
}

// Start starts the worker pool
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Reminder scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels the workers and waits for them until ctx expires.
// Jobs still in the queue are dropped; the next sweep finds them again.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	defer s.dropQueued()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Reminder scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Reminder scheduler stop timed out")
		return ctx.Err()
	}
}

// dropQueued empties the queue and forgets its appointments so a restarted
// scheduler accepts them again
func (s *Scheduler) dropQueued() {
	dropped := 0
	for {
		select {
		case job := <-s.jobs:
			s.mu.Lock()
			delete(s.queued, job.AppointmentID)
			s.mu.Unlock()
			dropped++
		default:
			if dropped > 0 {
				s.logger.Info("Dropped queued reminder jobs", zap.Int("count", dropped))
			}
			return
		}
	}
}

// SubmitJob queues a job for execution
func (s *Scheduler) SubmitJob(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return ErrSchedulerNotRunning
	}
	if _, ok := s.queued[job.AppointmentID]; ok {
		return ErrJobAlreadyQueued
	}

	select {
	case s.jobs <- job:
		s.queued[job.AppointmentID] = struct{}{}
		s.logger.Debug("Job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("appointment_id", job.AppointmentID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// Pending returns the number of jobs queued or running
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

func (s *Scheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *Scheduler) processJob(ctx context.Context, job *Job, workerID int) {
	job.Start()
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	sent, err := s.executor.Execute(jobCtx, job)
	if err != nil {
		job.Fail(err.Error())
		s.logger.Error("Reminder job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("appointment_id", job.AppointmentID.String()),
			zap.Int("retry_count", job.RetryCount),
			zap.Error(err),
		)

		if job.ShouldRetry() && ctx.Err() == nil {
			job.ScheduleRetry(s.config.RetryDelay)
			time.AfterFunc(s.config.RetryDelay, func() { s.requeue(job) })
			return
		}
		s.finish(job)
		return
	}

	if sent {
		job.Complete()
	} else {
		job.Skip()
	}
	s.logger.Debug("Reminder job finished",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("status", string(job.Status)),
	)
	s.finish(job)
}

// requeue puts a job waiting for its retry back on the queue
func (s *Scheduler) requeue(job *Job) {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()

	if running {
		select {
		case s.jobs <- job:
			return
		default:
			s.logger.Warn("Failed to re-queue job for retry",
				zap.String("job_id", job.ID.String()),
			)
		}
	}
	s.finish(job)
}

func (s *Scheduler) finish(job *Job) {
	s.mu.Lock()
	delete(s.queued, job.AppointmentID)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer(job)
	}
}

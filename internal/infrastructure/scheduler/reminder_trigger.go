package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/domain/scheduling"
)

// ReminderSource lists appointments whose reminder is due
type ReminderSource interface {
	DueReminders(ctx context.Context, limit int) ([]scheduling.ReminderCandidate, error)
}

// ReminderSender sends one reminder, reporting false when it was no longer due
type ReminderSender interface {
	Send(ctx context.Context, candidate scheduling.ReminderCandidate) (bool, error)
}

// ReminderExecutor adapts a ReminderSender to JobExecutor
type ReminderExecutor struct {
	sender ReminderSender
}

// NewReminderExecutor creates a new ReminderExecutor
func NewReminderExecutor(sender ReminderSender) *ReminderExecutor {
	return &ReminderExecutor{sender: sender}
}

// Execute sends the job's reminder
func (e *ReminderExecutor) Execute(ctx context.Context, job *Job) (bool, error) {
	return e.sender.Send(ctx, job.Candidate())
}

// TriggerConfig holds configuration for the reminder trigger
type TriggerConfig struct {
	// CheckInterval is how often due reminders are looked up
	CheckInterval time.Duration
	// BatchSize caps the candidates submitted per sweep
	BatchSize int
}

// DefaultTriggerConfig returns default trigger configuration
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		CheckInterval: time.Minute,
		BatchSize:     200,
	}
}

// ReminderTrigger periodically sweeps for due reminders and submits them
// to the scheduler
type ReminderTrigger struct {
	config    TriggerConfig
	scheduler *Scheduler
	source    ReminderSource
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewReminderTrigger creates a new reminder trigger
func NewReminderTrigger(config TriggerConfig, scheduler *Scheduler, source ReminderSource, logger *zap.Logger) *ReminderTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultTriggerConfig().CheckInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultTriggerConfig().BatchSize
	}
	return &ReminderTrigger{
		config:    config,
		scheduler: scheduler,
		source:    source,
		logger:    logger,
	}
}

// Start starts the sweep loop. The first sweep runs immediately.
func (t *ReminderTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Reminder trigger started",
		zap.Duration("check_interval", t.config.CheckInterval),
		zap.Int("batch_size", t.config.BatchSize),
	)
	return nil
}

// Stop stops the sweep loop
func (t *ReminderTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Reminder trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *ReminderTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	t.Sweep(ctx)

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep(ctx)
		}
	}
}

// Sweep submits one batch of due reminders and returns how many were queued.
// Candidates already queued are skipped.
func (t *ReminderTrigger) Sweep(ctx context.Context) int {
	candidates, err := t.source.DueReminders(ctx, t.config.BatchSize)
	if err != nil {
		t.logger.Error("Failed to list due reminders", zap.Error(err))
		return 0
	}

	submitted := 0
	for _, candidate := range candidates {
		err := t.scheduler.SubmitJob(NewJob(candidate, t.scheduler.config.RetryAttempts))
		switch {
		case err == nil:
			submitted++
		case errors.Is(err, ErrJobAlreadyQueued):
		case errors.Is(err, ErrJobQueueFull):
			t.logger.Warn("Reminder queue full, deferring to next sweep",
				zap.Int("remaining", len(candidates)-submitted),
			)
			return submitted
		default:
			t.logger.Error("Failed to submit reminder job",
				zap.String("appointment_id", candidate.AppointmentID.String()),
				zap.Error(err),
			)
			return submitted
		}
	}

	if submitted > 0 {
		t.logger.Info("Reminder jobs submitted", zap.Int("count", submitted))
	}
	return submitted
}

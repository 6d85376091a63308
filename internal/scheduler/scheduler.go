// Package scheduler runs the periodic maintenance jobs: library fine
// sweeps, reservation expiry and fee reminders. Each job runs on its own
// fixed interval and is stopped together with the server.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/univera/univera/internal/pkg/logger"
)

// Job is a unit of periodic work.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Description returns a human-readable description of the job.
	Description() string

	// Run executes the job. The context is cancelled when the
	// scheduler is stopping.
	Run(ctx context.Context) error
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// Scheduler manages and executes registered jobs.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Register adds a job that runs every interval. Registration after
// Start has no effect until the next Start.
func (s *Scheduler) Register(job Job, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, scheduledJob{job: job, interval: interval})
	logger.Info().
		Str("job", job.Name()).
		Str("interval", interval.String()).
		Msg("Scheduled job registered")
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, sj)
	}
	logger.Info().Int("jobs", len(s.jobs)).Msg("Scheduler started")
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, sj scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, sj.job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	started := time.Now()
	if err := job.Run(ctx); err != nil {
		logger.Error().
			Err(err).
			Str("job", job.Name()).
			Str("duration", time.Since(started).String()).
			Msg("Scheduled job failed")
		return
	}
	logger.Debug().
		Str("job", job.Name()).
		Str("duration", time.Since(started).String()).
		Msg("Scheduled job completed")
}

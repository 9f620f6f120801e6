package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Runner is one pipeline cycle. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs the pipeline once immediately, then on a cron schedule.
// Overlapping runs are skipped: if a tick fires while a previous run is
// still scoring, the new run logs a warning and yields.
type Scheduler struct {
	runner Runner
	spec   string // cron spec, e.g. "@every 6h" or "0 */6 * * *"
	cron   *cron.Cron
	mu     sync.Mutex // held for the duration of a run
	logger *slog.Logger
}

// New creates a scheduler for the given cron spec.
func New(runner Runner, spec string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		spec:   spec,
		cron:   cron.New(),
		logger: logger,
	}
}

// Run starts the schedule and blocks until ctx is cancelled (graceful
// shutdown). One cycle runs immediately before the first tick.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "spec", s.spec)

	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.spec, err)
	}

	// Immediate first cycle so a fresh deployment does not wait a full
	// interval for its first results.
	s.runOnce(ctx)

	s.cron.Start()
	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// runOnce executes one cycle under the overlap guard.
func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.mu.TryLock() {
		s.logger.Warn("previous run still in progress, skipping this tick")
		return
	}
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := s.runner.Run(ctx); err != nil {
		s.logger.Error("pipeline run failed", "error", err)
	}
}

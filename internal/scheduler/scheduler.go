// Package scheduler drives periodic reconciliation in the background.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner triggers one reconciliation pass.
type Runner func(ctx context.Context)

// Scheduler runs reconciliation once shortly after startup, then on a
// fixed interval. Intervals of zero or less disable the periodic run.
type Scheduler struct {
	run          Runner
	interval     time.Duration
	startupDelay time.Duration
	logger       *slog.Logger

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler around the run function.
func New(run Runner, interval, startupDelay time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		run:          run,
		interval:     interval,
		startupDelay: startupDelay,
		logger:       logger,
		cron:         cron.New(),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the startup run and the periodic schedule. It returns
// once the schedule is registered; runs happen on background goroutines.
func (s *Scheduler) Start() error {
	go s.startupRun()

	if s.interval <= 0 {
		s.logger.Info("periodic sync disabled")
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.logger.Debug("scheduled sync starting")
		s.run(s.ctx)
	}); err != nil {
		return fmt.Errorf("failed to register sync schedule: %w", err)
	}

	s.cron.Start()
	s.logger.Info("sync schedule registered", "interval", s.interval.String())
	return nil
}

// Stop cancels in-flight runs and waits for scheduled jobs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// startupRun waits out the configured delay, then triggers the first
// pass so a fresh deploy does not sit empty until the first tick.
func (s *Scheduler) startupRun() {
	if s.startupDelay > 0 {
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.startupDelay):
		}
	}
	s.logger.Debug("startup sync starting")
	s.run(s.ctx)
}

// Package service coordinates reconciliation runs across their callers.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hms-dev/mileage-backend/internal/application/reconcile"
)

// Runner executes one reconciliation pass.
type Runner interface {
	Run(ctx context.Context) reconcile.Result
}

// SyncService serializes reconciliation runs. Both the manual sync
// endpoint and the background scheduler go through it, so two runs can
// never interleave their feed snapshots or batch inserts.
type SyncService struct {
	runner Runner
	logger *slog.Logger

	mu         sync.Mutex
	lastResult *reconcile.Result
	lastRun    time.Time
}

// NewSyncService creates a sync service around the given runner.
func NewSyncService(runner Runner, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{runner: runner, logger: logger}
}

// Sync runs one reconciliation pass. Concurrent callers block until the
// in-flight run finishes, then run in turn.
func (s *SyncService) Sync(ctx context.Context) reconcile.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	result := s.runner.Run(ctx)

	s.lastResult = &result
	s.lastRun = started

	if result.Error != "" {
		s.logger.Warn("sync finished with error", "error", result.Error, "duration", time.Since(started))
	} else {
		s.logger.Info("sync finished", "added", result.Added, "skipped", result.Skipped, "duration", time.Since(started))
	}

	return result
}

// LastRun returns the most recent result and when it started. The bool
// is false until the first run completes.
func (s *SyncService) LastRun() (reconcile.Result, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return reconcile.Result{}, time.Time{}, false
	}
	return *s.lastResult, s.lastRun, true
}

package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupRunFires(t *testing.T) {
	var runs int32
	s := New(func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}, 0, 10*time.Millisecond, slog.Default())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestStopCancelsPendingStartupRun(t *testing.T) {
	var runs int32
	s := New(func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}, 0, time.Hour, slog.Default())

	require.NoError(t, s.Start())
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&runs))
}

func TestPeriodicRunsFire(t *testing.T) {
	var runs int32
	s := New(func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}, 50*time.Millisecond, 0, slog.Default())

	require.NoError(t, s.Start())
	defer s.Stop()

	// One startup run plus at least one scheduled tick.
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRunReceivesCancellableContext(t *testing.T) {
	cancelled := make(chan struct{})
	s := New(func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	}, 0, 0, slog.Default())

	require.NoError(t, s.Start())
	s.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("run context was not cancelled on Stop")
	}
}

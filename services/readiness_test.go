package services

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"service-launcher/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingProber(readyAt int32) (Prober, *atomic.Int32) {
	var calls atomic.Int32
	return ProberFunc(func(int) bool {
		n := calls.Add(1)
		return readyAt > 0 && n >= readyAt
	}), &calls
}

func TestReadinessWaiter_ReadyOnThirdProbe(t *testing.T) {
	prober, calls := countingProber(3)
	w := NewReadinessWaiter(prober, config.ReadinessConfig{Attempts: 10, Interval: 5 * time.Millisecond})

	ready, attempts := w.Wait(context.Background(), 9000, "")
	assert.True(t, ready)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestReadinessWaiter_BoundedAttempts(t *testing.T) {
	prober, calls := countingProber(0)
	w := NewReadinessWaiter(prober, config.ReadinessConfig{Attempts: 10, Interval: time.Millisecond})

	done := make(chan struct{})
	var ready bool
	var attempts int
	go func() {
		ready, attempts = w.Wait(context.Background(), 9000, "")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("readiness wait did not terminate")
	}
	assert.False(t, ready)
	assert.Equal(t, 10, attempts)
	assert.Equal(t, int32(10), calls.Load())
}

func TestReadinessWaiter_ContextCancelled(t *testing.T) {
	prober, calls := countingProber(0)
	w := NewReadinessWaiter(prober, config.ReadinessConfig{Attempts: 10, Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ready, attempts := w.Wait(ctx, 9000, "")
	assert.False(t, ready)
	assert.Equal(t, 0, attempts)
	assert.Equal(t, int32(0), calls.Load())
}

func TestReadinessWaiter_LogWriteTriggersProbe(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "svc.log")
	require.NoError(t, os.WriteFile(logPath, nil, 0644))

	prober, calls := countingProber(1)
	w := NewReadinessWaiter(prober, config.ReadinessConfig{Attempts: 1, Interval: time.Minute, WatchLogs: true})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return
				}
				f.WriteString("Application startup complete.\n")
				f.Close()
			}
		}
	}()

	start := time.Now()
	ready, attempts := w.Wait(context.Background(), 9000, logPath)
	assert.True(t, ready)
	assert.Equal(t, 0, attempts, "event-triggered probes are not counted")
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestReadinessWaiter_WatchMissingLogFallsBackToPolling(t *testing.T) {
	prober, _ := countingProber(2)
	w := NewReadinessWaiter(prober, config.ReadinessConfig{Attempts: 3, Interval: 5 * time.Millisecond, WatchLogs: true})

	ready, attempts := w.Wait(context.Background(), 9000, filepath.Join(t.TempDir(), "missing.log"))
	assert.True(t, ready)
	assert.Equal(t, 2, attempts)
}

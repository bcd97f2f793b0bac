package housekeeping

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce_FailureDoesNotStopOtherJobs(t *testing.T) {
	var sessions, notifications int32
	r := NewRunner(time.Hour,
		Job{Name: "admin_sessions", Run: func(context.Context) (int64, error) {
			atomic.AddInt32(&sessions, 1)
			return 0, errors.New("function clean_expired_admin_sessions() does not exist")
		}},
		Job{Name: "notifications", Run: func(context.Context) (int64, error) {
			atomic.AddInt32(&notifications, 1)
			return 2, nil
		}},
	)

	r.RunOnce(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&sessions))
	assert.Equal(t, int32(1), atomic.LoadInt32(&notifications))
}

func TestRun_RunsAtStartAndOnTicks(t *testing.T) {
	var runs int32
	r := NewRunner(10*time.Millisecond, Job{Name: "count", Run: func(context.Context) (int64, error) {
		atomic.AddInt32(&runs, 1)
		return 0, nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunOnce_CancelledContext(t *testing.T) {
	called := false
	r := NewRunner(time.Hour, Job{Name: "never", Run: func(context.Context) (int64, error) {
		called = true
		return 0, nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.RunOnce(ctx)

	assert.False(t, called)
}

func TestNewRunner_NonPositiveIntervalFallsBack(t *testing.T) {
	assert.Equal(t, defaultInterval, NewRunner(0).interval)
	assert.Equal(t, defaultInterval, NewRunner(-time.Minute).interval)
	assert.Equal(t, time.Minute, NewRunner(time.Minute).interval)
}

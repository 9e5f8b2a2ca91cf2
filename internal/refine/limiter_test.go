package refine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAdaptsDown(t *testing.T) {
	l := NewRateLimiter(8*time.Second, 1*time.Second, 30*time.Second)

	// Two successes are not enough to change the delay.
	l.RecordSuccess()
	l.RecordSuccess()
	assert.Equal(t, 8*time.Second, l.Delay())

	// The third halves it.
	l.RecordSuccess()
	assert.Equal(t, 4*time.Second, l.Delay())

	// Repeated success streaks converge on the floor.
	for i := 0; i < 30; i++ {
		l.RecordSuccess()
	}
	assert.Equal(t, 1*time.Second, l.Delay())
}

func TestRateLimiterAdaptsUp(t *testing.T) {
	l := NewRateLimiter(2*time.Second, 1*time.Second, 10*time.Second)

	l.RecordFailure()
	assert.Equal(t, 4*time.Second, l.Delay())
	l.RecordFailure()
	assert.Equal(t, 8*time.Second, l.Delay())

	// Capped at the ceiling.
	l.RecordFailure()
	assert.Equal(t, 10*time.Second, l.Delay())
}

func TestRateLimiterFailureResetsStreak(t *testing.T) {
	l := NewRateLimiter(4*time.Second, 1*time.Second, 30*time.Second)

	l.RecordSuccess()
	l.RecordSuccess()
	l.RecordFailure() // streak gone, delay doubled
	assert.Equal(t, 8*time.Second, l.Delay())

	l.RecordSuccess()
	l.RecordSuccess()
	assert.Equal(t, 8*time.Second, l.Delay())
	l.RecordSuccess()
	assert.Equal(t, 4*time.Second, l.Delay())
}

func TestRateLimiterBoundsClamped(t *testing.T) {
	l := NewRateLimiter(100*time.Millisecond, 1*time.Second, 5*time.Second)
	assert.Equal(t, 1*time.Second, l.Delay())

	l = NewRateLimiter(time.Minute, 1*time.Second, 5*time.Second)
	assert.Equal(t, 5*time.Second, l.Delay())
}

func TestRateLimiterWaitFirstCallImmediate(t *testing.T) {
	l := NewRateLimiter(10*time.Second, 1*time.Second, 30*time.Second)

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("first Wait blocked for %v, want immediate", elapsed)
	}
}

func TestRateLimiterWaitEnforcesDelay(t *testing.T) {
	l := NewRateLimiter(1*time.Second, 1*time.Second, 30*time.Second)

	var slept time.Duration
	l.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}
	now := time.Now()
	l.now = func() time.Time { return now }

	require.NoError(t, l.Wait(context.Background()))
	assert.Zero(t, slept)

	// Second call with no time elapsed must sleep the full delay.
	require.NoError(t, l.Wait(context.Background()))
	assert.Equal(t, 1*time.Second, slept)
}

func TestRateLimiterWaitCancellation(t *testing.T) {
	l := NewRateLimiter(1*time.Second, 1*time.Second, 30*time.Second)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.Canceled)
}

package refine

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// ADAPTIVE RATE LIMITER
// =============================================================================

// RateLimiter enforces a minimum delay between external generation calls.
// The delay adapts to observed behavior: it halves after three consecutive
// successes down to a floor, and doubles after any failure up to a ceiling.
// Safe for use by concurrent workers sharing one limiter.
type RateLimiter struct {
	mu            sync.Mutex
	delay         time.Duration
	minDelay      time.Duration
	maxDelay      time.Duration
	successStreak int
	lastCall      time.Time
	now           func() time.Time
	sleep         func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a limiter starting at initial delay, bounded by
// [min, max]. Zero or negative bounds fall back to sane defaults.
func NewRateLimiter(initial, min, max time.Duration) *RateLimiter {
	if min <= 0 {
		min = 500 * time.Millisecond
	}
	if max <= 0 {
		max = 30 * time.Second
	}
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &RateLimiter{
		delay:    initial,
		minDelay: min,
		maxDelay: max,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the minimum inter-call delay has elapsed since the last
// call, or the context is cancelled.
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	var wait time.Duration
	if !l.lastCall.IsZero() {
		elapsed := l.now().Sub(l.lastCall)
		if elapsed < l.delay {
			wait = l.delay - elapsed
		}
	}
	l.mu.Unlock()

	if wait > 0 {
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.lastCall = l.now()
	l.mu.Unlock()
	return nil
}

// RecordSuccess registers a successful call. Every third consecutive success
// halves the delay, never dropping below the floor.
func (l *RateLimiter) RecordSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.successStreak++
	if l.successStreak >= 3 {
		l.successStreak = 0
		l.delay /= 2
		if l.delay < l.minDelay {
			l.delay = l.minDelay
		}
	}
}

// RecordFailure registers a failed call, doubling the delay up to the ceiling
// and resetting the success streak.
func (l *RateLimiter) RecordFailure() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.successStreak = 0
	l.delay *= 2
	if l.delay > l.maxDelay {
		l.delay = l.maxDelay
	}
}

// Delay reports the current inter-call delay.
func (l *RateLimiter) Delay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the minimum spacing between upstream API calls the
// free CoinGecko tier tolerates.
const DefaultMinInterval = 2500 * time.Millisecond

// Throttle enforces a minimum spacing between calls to a shared upstream.
// All callers funnel through the same clock: the spacing is process-wide,
// not per asset or per caller. The clock only advances on Record, so a
// failed call does not consume budget against itself.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a throttle with the given minimum interval. A non-positive
// interval falls back to DefaultMinInterval.
func New(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return &Throttle{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// last recorded call, then returns the duration actually waited. The first
// call never waits.
func (t *Throttle) Wait(ctx context.Context) (time.Duration, error) {
	t.mu.Lock()
	last := t.last
	t.mu.Unlock()

	if last.IsZero() {
		return 0, nil
	}
	remaining := t.interval - t.now().Sub(last)
	if remaining <= 0 {
		return 0, nil
	}
	if err := t.sleep(ctx, remaining); err != nil {
		return 0, err
	}
	return remaining, nil
}

// Record marks a successful call at its completion time. Callers must not
// record failed calls.
func (t *Throttle) Record() {
	t.mu.Lock()
	t.last = t.now()
	t.mu.Unlock()
}

// Interval returns the configured minimum spacing.
func (t *Throttle) Interval() time.Duration { return t.interval }

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

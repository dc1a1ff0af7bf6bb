package speech

import (
	"sync"
	"time"
)

// Clock supplies the current time so the limiter can be tested without
// sleeping.
type Clock func() time.Time

// RateLimiter spaces out remote synthesis calls. When a call arrives
// inside the minimum interval the caller is expected to fall back to
// local synthesis.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      Clock
}

func NewRateLimiter(interval time.Duration, now Clock) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{interval: interval, now: now}
}

// Allow reports whether a remote call may proceed, recording the call
// time when it does.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.now()
	if !l.last.IsZero() && t.Sub(l.last) < l.interval {
		return false
	}
	l.last = t
	return true
}

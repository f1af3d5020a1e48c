// Package ratelimit throttles outbound scan traffic so a scan never
// looks like an attack to the site it is auditing.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter caps global request throughput and optionally enforces a
// minimum spacing between requests to the same host.
type Limiter struct {
	limiter  *rate.Limiter
	minDelay time.Duration

	mu          sync.Mutex
	lastRequest map[string]time.Time
}

// NewLimiter allows rps requests per second with the given burst.
func NewLimiter(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		lastRequest: make(map[string]time.Time),
	}
}

// WithMinDelay sets the per-host spacing enforced by WaitForHost.
func (l *Limiter) WithMinDelay(d time.Duration) *Limiter {
	l.minDelay = d
	return l
}

// Wait blocks until the global limiter admits one request or the
// context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// WaitForHost waits for the global limiter and then for the per-host
// minimum delay.
func (l *Limiter) WaitForHost(ctx context.Context, host string) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	if l.minDelay <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastRequest[host]; ok {
		if wait := l.minDelay - time.Since(last); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	l.lastRequest[host] = time.Now()
	return nil
}

// Allow reports whether one request may proceed right now, without
// blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetLimit adjusts the global rate at runtime.
func (l *Limiter) SetLimit(rps float64) {
	l.limiter.SetLimit(rate.Limit(rps))
}

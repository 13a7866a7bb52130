// Package ratelimit budgets calls to the generative backend. Hitting the
// budget is not an error condition for callers: they take the
// deterministic fallback path instead.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

type Limiter struct {
	mu        sync.Mutex
	count     int
	max       int // 0 = unlimited
	resetTime time.Time
	window    time.Duration
}

// New creates a limiter allowing max requests per window.
func New(max int, window time.Duration) *Limiter {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Limiter{
		max:       max,
		window:    window,
		resetTime: time.Now().Add(window),
	}
}

// Allow reports whether another request fits the budget, without
// consuming it.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	return l.max <= 0 || l.count < l.max
}

// Use consumes one request from the budget.
func (l *Limiter) Use() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	if l.max > 0 && l.count >= l.max {
		return fmt.Errorf("generative request budget exhausted (%d/%d)", l.count, l.max)
	}
	l.count++
	return nil
}

func (l *Limiter) Stats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	return map[string]interface{}{
		"used":       l.count,
		"limit":      l.max,
		"reset_time": l.resetTime.Format(time.RFC3339),
	}
}

func (l *Limiter) checkReset() {
	if time.Now().After(l.resetTime) {
		l.count = 0
		l.resetTime = time.Now().Add(l.window)
	}
}

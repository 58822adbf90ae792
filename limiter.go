package site

import (
	"sync"
	"time"
)

// Limiter is a per-key sliding-window rate limiter, used for admin logins
// (keyed by IP) and share event recording.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	done   chan struct{}
	once   sync.Once
}

// NewLimiter creates a Limiter that allows max hits per window per key.
// Call Stop to end its background cleanup.
func NewLimiter(max int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		done:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-l.window)
			for key := range l.hits {
				l.prune(key, cutoff)
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// prune drops hits older than cutoff; callers hold l.mu.
func (l *Limiter) prune(key string, cutoff time.Time) []time.Time {
	hits := l.hits[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = kept
	return kept
}

// Allow checks if key has not exceeded the limit and records the hit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prune(key, time.Now().Add(-l.window))) >= l.max {
		return false
	}
	l.hits[key] = append(l.hits[key], time.Now())
	return true
}

// Check returns true if key has not exceeded the limit.
// It does not record a hit; call Record separately, e.g. on a failed login.
func (l *Limiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(key, time.Now().Add(-l.window))) < l.max
}

// Record registers a hit for key.
func (l *Limiter) Record(key string) {
	l.mu.Lock()
	l.hits[key] = append(l.hits[key], time.Now())
	l.mu.Unlock()
}

package security

import (
	"sync"
	"time"
)

type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter enforces a fixed-window request budget per identifier.
// Windows never slide: the first request for an identifier opens a
// window, every request inside it counts against the budget, and the
// window boundary moves only once it has expired. Stale entries are
// reclaimed lazily on their next use.
//
// State is owned by the limiter and is not shared across instances.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	window      time.Duration
	maxRequests int
	now         func() time.Time
}

// NewRateLimiter creates a limiter. Non-positive parameters fall back to
// the package defaults.
func NewRateLimiter(window time.Duration, maxRequests int) *RateLimiter {
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequestsPerWindow
	}
	return &RateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Allow records a request for the identifier and reports whether it fits
// the current window's budget. A denied request does not modify state.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries[identifier]
	if !ok || !now.Before(entry.resetAt) {
		rl.entries[identifier] = &rateLimitEntry{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if entry.count >= rl.maxRequests {
		return false
	}
	entry.count++
	return true
}

// Remaining returns the budget left for the identifier in its current
// window without consuming any of it.
func (rl *RateLimiter) Remaining(identifier string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[identifier]
	if !ok || !rl.now().Before(entry.resetAt) {
		return rl.maxRequests
	}
	if entry.count >= rl.maxRequests {
		return 0
	}
	return rl.maxRequests - entry.count
}

// Reset clears all windows.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.entries = make(map[string]*rateLimitEntry)
}

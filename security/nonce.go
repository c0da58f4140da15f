package security

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// nonceTTL bounds how old a nonce's embedded timestamp may be.
	nonceTTL = 5 * time.Minute
	// maxTrackedNonces caps registry growth; exceeding it triggers a
	// sweep of expired entries.
	maxTrackedNonces = 1000
)

// NonceRegistry issues single-use message nonces and rejects replays.
// A nonce is <unix milliseconds>-<random base36 fragment>; the embedded
// timestamp bounds its lifetime, so the registry only has to remember
// nonces for the freshness window.
//
// State is owned by the registry and is not shared across instances.
type NonceRegistry struct {
	mu         sync.Mutex
	seen       map[string]int64 // nonce -> embedded unix ms
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewNonceRegistry creates an empty registry.
func NewNonceRegistry() *NonceRegistry {
	return &NonceRegistry{
		seen:       make(map[string]int64),
		ttl:        nonceTTL,
		maxEntries: maxTrackedNonces,
		now:        time.Now,
	}
}

// Generate returns a fresh nonce. The nonce is not recorded; it becomes
// used only when Validate accepts it.
func (r *NonceRegistry) Generate() string {
	var buf [8]byte
	// crypto/rand never fails on supported platforms
	_, _ = rand.Read(buf[:])
	fragment := strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)

	return fmt.Sprintf("%d-%s", r.now().UnixMilli(), fragment)
}

// Validate accepts a nonce exactly once while it is fresh.
//
// The checks run in order: replay, then timestamp parse, then freshness,
// then recording. An expired or malformed nonce is never recorded, so
// presenting it again fails for the same reason rather than as a replay.
func (r *NonceRegistry) Validate(nonce string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, used := r.seen[nonce]; used {
		return false
	}

	ts, ok := parseNonceTimestamp(nonce)
	if !ok {
		return false
	}

	now := r.now()
	if now.UnixMilli()-ts > r.ttl.Milliseconds() {
		return false
	}

	r.seen[nonce] = ts
	if len(r.seen) > r.maxEntries {
		r.sweepLocked(now)
	}
	return true
}

// sweepLocked drops entries whose embedded timestamp fell out of the
// freshness window. Amortized: it only runs when the registry outgrows
// its cap, so a burst of fresh nonces may transiently exceed it.
func (r *NonceRegistry) sweepLocked(now time.Time) {
	cutoff := now.UnixMilli() - r.ttl.Milliseconds()
	for nonce, ts := range r.seen {
		if ts < cutoff {
			delete(r.seen, nonce)
		}
	}
}

func parseNonceTimestamp(nonce string) (int64, bool) {
	prefix, _, _ := strings.Cut(nonce, "-")
	ts, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil || ts < 0 {
		return 0, false
	}
	return ts, true
}

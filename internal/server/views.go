package server

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/giantswarm/kube-explorer/internal/instrumentation"
)

// ViewTracker remembers the latest request generation of every view session.
//
// A dashboard tab issues a new selection on every keystroke. Each request
// takes the next generation of its session, and a response is only served
// while its generation is still the newest one. Idle sessions expire after
// the configured TTL.
type ViewTracker struct {
	mu       sync.Mutex
	sessions *cache.Cache
	metrics  *instrumentation.Metrics
}

// NewViewTracker returns a tracker whose sessions expire after ttl. The
// active session gauge of metrics follows the tracked sessions; metrics may
// be nil.
func NewViewTracker(ttl time.Duration, metrics *instrumentation.Metrics) *ViewTracker {
	if ttl <= 0 {
		ttl = DefaultViewSessionTTL
	}

	sessions := cache.New(ttl, ttl/2)
	sessions.OnEvicted(func(string, interface{}) {
		metrics.DecrementViewSessions(context.Background())
	})
	return &ViewTracker{sessions: sessions, metrics: metrics}
}

// Begin starts a new request for session and returns its generation. An
// empty session is anonymous and always gets generation zero.
func (v *ViewTracker) Begin(session string) uint64 {
	if session == "" {
		return 0
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	generation := uint64(1)
	if current, ok := v.sessions.Get(session); ok {
		generation = current.(uint64) + 1
	} else {
		// Evicts an expired entry that the janitor has not collected yet.
		v.sessions.Delete(session)
		v.metrics.IncrementViewSessions(context.Background())
	}
	v.sessions.SetDefault(session, generation)
	return generation
}

// Current reports whether generation is still the newest request of session.
func (v *ViewTracker) Current(session string, generation uint64) bool {
	if session == "" {
		return true
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	current, ok := v.sessions.Get(session)
	if !ok {
		return true
	}
	return current.(uint64) == generation
}

// Len returns the number of remembered sessions, expired ones included
// until they are collected.
func (v *ViewTracker) Len() int {
	return v.sessions.ItemCount()
}

// Flush forgets every session.
func (v *ViewTracker) Flush() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sessions.DeleteExpired()
	for session := range v.sessions.Items() {
		v.sessions.Delete(session)
	}
}

package hold

import (
	"context"
	"sync"
	"time"
)

// Store is the single shared mutable resource of the hold core: a
// time-expiring map from Key to Bucket.  All mutation goes through this
// API: callers receive copies and must write changes back via Set, no
// component may hold a bucket reference and mutate it in place.
//
// GetOrCreate must be atomic with respect to concurrent creation: two
// requests racing to create the same key for the first time must end up
// sharing one bucket, not losing one of them.
type Store interface {
	// GetOrCreate returns a copy of the bucket under key, creating an
	// empty one with the given TTL when none exists yet.
	GetOrCreate(ctx context.Context, key Key, ttl time.Duration) (Bucket, error)
	// Set installs the bucket under key and resets its TTL window.
	Set(ctx context.Context, key Key, b Bucket, ttl time.Duration) error
}

// EvictFunc is invoked by stores that support active eviction, once per
// evicted bucket, with the records that were still held when the TTL
// elapsed (already transitioned to their released shape).
type EvictFunc func(key Key, released []TableHold)

// MemoryStore is the process-local Store used by a single-instance
// deployment.  Expiry is enforced twice: lazily on read (records past
// their HoldExpiry come back in released shape) and actively by a timer
// per bucket.  When the timer fires, records still marked held are
// forced to released shape and reported through the EvictFunc; the
// released-shape bucket is kept for one more TTL window so late readers
// can distinguish "was held, now free" from "never held", then dropped.
//
// The eviction timer reads the live bucket under the store lock at the
// moment it fires, never a snapshot captured at registration.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]*memEntry
	onEvict EvictFunc
	now     func() time.Time
}

type memEntry struct {
	bucket    Bucket
	ttl       time.Duration
	expiresAt time.Time
	timer     *time.Timer
}

// NewMemoryStore constructs an empty MemoryStore.  onEvict may be nil
// when the caller does not care about autonomous expiry events.
func NewMemoryStore(onEvict EvictFunc) *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key]*memEntry),
		onEvict: onEvict,
		now:     time.Now,
	}
}

// GetOrCreate implements Store.  The whole lookup-or-insert runs under
// the store lock, so concurrent first-time creation of the same key can
// never lose an update.
func (s *MemoryStore) GetOrCreate(_ context.Context, key Key, ttl time.Duration) (Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &memEntry{
			bucket:    Bucket{},
			ttl:       ttl,
			expiresAt: s.now().Add(ttl),
		}
		e.timer = time.AfterFunc(ttl, func() { s.evict(key) })
		s.entries[key] = e
	}
	return s.shapedClone(e), nil
}

// Set implements Store.  It replaces the bucket and restarts the TTL
// window; a timer from the previous window that has already fired and is
// waiting on the lock will see the fresh deadline and do nothing.
func (s *MemoryStore) Set(_ context.Context, key Key, b Bucket, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok && old.timer != nil {
		old.timer.Stop()
	}
	e := &memEntry{
		bucket:    b.clone(),
		ttl:       ttl,
		expiresAt: s.now().Add(ttl),
	}
	e.timer = time.AfterFunc(ttl, func() { s.evict(key) })
	s.entries[key] = e
	return nil
}

// Close stops all pending eviction timers.  Buckets are left in place;
// the store is not meant to be used after Close.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
}

// shapedClone copies the bucket, forcing records whose HoldExpiry has
// passed into released shape.  This is the lazy half of expiry; the
// stored records are left to the eviction timer.
func (s *MemoryStore) shapedClone(e *memEntry) Bucket {
	now := s.now()
	out := make(Bucket, len(e.bucket))
	for k, rec := range e.bucket {
		if rec.IsHeld && !now.Before(rec.HoldExpiry) {
			rec = rec.released()
		}
		out[k] = rec
	}
	return out
}

// evict runs when a bucket's TTL elapses.  Records still marked held are
// forced to released shape even if no client ever called Release.  When
// the pass released anything, the bucket is reinstalled for one more TTL
// window; an already fully released bucket is removed outright.
func (s *MemoryStore) evict(key Key) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || s.now().Before(e.expiresAt) {
		// Entry was replaced with a fresh window after this timer fired.
		s.mu.Unlock()
		return
	}
	var released []TableHold
	for k, rec := range e.bucket {
		if rec.IsHeld {
			rec = rec.released()
			e.bucket[k] = rec
			released = append(released, rec)
		}
	}
	if len(released) == 0 {
		delete(s.entries, key)
		s.mu.Unlock()
		return
	}
	e.expiresAt = s.now().Add(e.ttl)
	e.timer = time.AfterFunc(e.ttl, func() { s.evict(key) })
	cb := s.onEvict
	s.mu.Unlock()
	if cb != nil {
		cb(key, released)
	}
}

package hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the Store used when the platform runs more than one API
// instance: holds on a local cache would only bind customers talking to
// the same process, so multi-instance deployments point every instance
// at a shared Redis.  Buckets are stored as JSON values with a Redis
// TTL.
//
// Redis deletes expired keys itself and offers no reliable eviction
// callback, so this store has no autonomous-expiry notification; the
// "expired is never held" invariant is preserved by the lazy half of
// expiry: records past their HoldExpiry come back in released shape on
// every read, exactly as MemoryStore shapes its clones.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisStore wraps an already connected Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

// GetOrCreate implements Store.  SETNX makes first-time creation atomic:
// of two requests racing to create the same key, exactly one installs
// the empty bucket and both read the same value back.
func (s *RedisStore) GetOrCreate(ctx context.Context, key Key, ttl time.Duration) (Bucket, error) {
	if err := s.rdb.SetNX(ctx, key.String(), "{}", ttl).Err(); err != nil {
		return nil, fmt.Errorf("hold: create bucket %s: %w", key, err)
	}
	raw, err := s.rdb.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key expired between the SETNX and the GET; treat as empty.
		return Bucket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hold: read bucket %s: %w", key, err)
	}
	var b Bucket
	if err := json.Unmarshal(raw, &b); err != nil {
		// A malformed bucket is a programming error, not contention.
		return nil, fmt.Errorf("hold: decode bucket %s: %w", key, err)
	}
	now := s.now()
	for k, rec := range b {
		if rec.IsHeld && !now.Before(rec.HoldExpiry) {
			b[k] = rec.released()
		}
	}
	return b, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key Key, b Bucket, ttl time.Duration) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("hold: encode bucket %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("hold: write bucket %s: %w", key, err)
	}
	return nil
}

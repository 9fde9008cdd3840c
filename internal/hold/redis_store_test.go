package hold

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreCreateAndReadBack(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()
	key := Key{BarID: 3, TableID: 9}

	b, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, b)

	rec := TableHold{
		TableID:         9,
		BarID:           3,
		AccountID:       42,
		ReservationDate: "2024-12-24",
		ReservationTime: "20:00",
		IsHeld:          true,
		HoldExpiry:      time.Now().Add(5 * time.Minute).UTC(),
	}
	b["9|2024-12-24|20:00"] = rec
	require.NoError(t, s.Set(ctx, key, b, time.Minute))

	got, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(42), got["9|2024-12-24|20:00"].AccountID)
	assert.True(t, got["9|2024-12-24|20:00"].IsHeld)
}

func TestRedisStoreBucketExpires(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{TableID: 1, AccountID: 7, IsHeld: true, HoldExpiry: time.Now().Add(time.Minute)}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, 30*time.Second))

	// Redis drops the key after the TTL; a later read starts empty.
	mr.FastForward(time.Minute)
	got, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStoreLazyExpiryOnRead(t *testing.T) {
	// The bucket key can outlive an individual record's HoldExpiry; the
	// expired record must still never be treated as held.
	s, _ := newRedisStore(t)
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{
		TableID:    1,
		AccountID:  7,
		IsHeld:     true,
		HoldExpiry: time.Now().Add(-time.Second),
	}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, time.Minute))

	got, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, got["1|d|t"].IsHeld)
	assert.Zero(t, got["1|d|t"].AccountID)
}

func TestRedisStoreCreateDoesNotClobberExisting(t *testing.T) {
	// GetOrCreate uses SETNX: a second creator must read the existing
	// bucket, never reset it to empty.
	s, _ := newRedisStore(t)
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{TableID: 1, AccountID: 7, IsHeld: true, HoldExpiry: time.Now().Add(time.Minute)}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, time.Minute))

	got, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got["1|d|t"].IsHeld)
}

func TestManagerOnRedisStore(t *testing.T) {
	// The manager behaves identically over the distributed store.
	s, _ := newRedisStore(t)
	tables := &stubTables{tables: []Table{{ID: 1, BarID: 1}, {ID: 2, BarID: 1}}}
	m := NewManager(s, tables, LogSink{}, ManagerConfig{})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	_, err = m.Hold(ctx, 1, 1, dateA, timeA, 20)
	require.ErrorIs(t, err, ErrTableHeld)

	rec, err := m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	assert.False(t, rec.IsHeld)

	rec, err = m.Hold(ctx, 1, 1, dateA, timeA, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rec.AccountID)
}

package hold

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetOrCreateIsAtomic(t *testing.T) {
	// Racing first-time creation of one key must converge on a single
	// bucket: every goroutine writes its own slot entry and none may be
	// lost to a duplicate create.
	s := NewMemoryStore(nil)
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.GetOrCreate(ctx, key, time.Minute)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	b, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	// Mutating a returned bucket without Set must not leak into the
	// store; all mutation goes through the API.
	s := NewMemoryStore(nil)
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	b, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	b["rogue"] = TableHold{TableID: 1, IsHeld: true}

	again, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMemoryStoreEvictionReleasesHeldRecords(t *testing.T) {
	type evicted struct {
		key      Key
		released []TableHold
	}
	ch := make(chan evicted, 1)
	s := NewMemoryStore(func(key Key, released []TableHold) {
		ch <- evicted{key: key, released: released}
	})
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 7}

	rec := TableHold{
		TableID:    7,
		BarID:      1,
		AccountID:  10,
		IsHeld:     true,
		HoldExpiry: time.Now().Add(20 * time.Millisecond),
	}
	require.NoError(t, s.Set(ctx, key, Bucket{"7|d|t": rec}, 20*time.Millisecond))

	select {
	case ev := <-ch:
		require.Equal(t, key, ev.key)
		require.Len(t, ev.released, 1)
		assert.False(t, ev.released[0].IsHeld)
		assert.Zero(t, ev.released[0].AccountID)
		assert.Equal(t, uint64(7), ev.released[0].TableID)
	case <-time.After(time.Second):
		t.Fatal("eviction callback never fired")
	}

	// The released-shape bucket stays readable for one more window so
	// late readers see "was held, now free".
	b, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.False(t, b["7|d|t"].IsHeld)
}

func TestMemoryStoreEvictionDropsReleasedBuckets(t *testing.T) {
	// A bucket that holds nothing when its TTL lapses is removed, not
	// reinstalled forever.
	s := NewMemoryStore(nil)
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{TableID: 1, BarID: 1}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, 15*time.Millisecond))

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.entries[key]
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStoreLazyExpiryOnRead(t *testing.T) {
	// A record past its HoldExpiry must come back released even before
	// the eviction timer has had a chance to run.
	s := NewMemoryStore(nil)
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{
		TableID:    1,
		BarID:      1,
		AccountID:  10,
		IsHeld:     true,
		HoldExpiry: time.Now().Add(-time.Second), // already past
	}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, time.Minute))

	b, err := s.GetOrCreate(ctx, key, time.Minute)
	require.NoError(t, err)
	got := b["1|d|t"]
	assert.False(t, got.IsHeld)
	assert.Zero(t, got.AccountID)
}

func TestMemoryStoreSetResetsWindow(t *testing.T) {
	// Reinstalling a bucket supersedes the previous eviction timer; the
	// fresh window must not be cut short by the stale one.
	fired := make(chan struct{}, 4)
	s := NewMemoryStore(func(Key, []TableHold) { fired <- struct{}{} })
	defer s.Close()
	ctx := context.Background()
	key := Key{BarID: 1, TableID: 1}

	rec := TableHold{TableID: 1, AccountID: 10, IsHeld: true, HoldExpiry: time.Now().Add(time.Hour)}
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, 30*time.Millisecond))
	time.Sleep(15 * time.Millisecond)
	require.NoError(t, s.Set(ctx, key, Bucket{"1|d|t": rec}, time.Hour))

	select {
	case <-fired:
		t.Fatal("stale timer evicted a freshly reset bucket")
	case <-time.After(100 * time.Millisecond):
	}
}

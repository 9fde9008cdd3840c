package hold

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTables is a TableFinder over a fixed in-memory table set.
type stubTables struct {
	tables []Table
}

func (s *stubTables) GetTable(_ context.Context, barID, tableID uint64) (Table, error) {
	for _, t := range s.tables {
		if t.BarID == barID && t.ID == tableID {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: table %d", ErrTableNotFound, tableID)
}

func (s *stubTables) ListTables(_ context.Context, barID uint64) ([]Table, error) {
	var out []Table
	for _, t := range s.tables {
		if t.BarID == barID {
			out = append(out, t)
		}
	}
	return out, nil
}

// recordingSink counts notifications; calls arrive on detached
// goroutines so access is guarded.
type recordingSink struct {
	mu       sync.Mutex
	held     []uint64
	released []uint64
}

func (s *recordingSink) NotifyHeld(tableID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = append(s.held, tableID)
}

func (s *recordingSink) NotifyReleased(tableID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = append(s.released, tableID)
}

func (s *recordingSink) counts() (held, released int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held), len(s.released)
}

func newTestManager(t *testing.T, cfg ManagerConfig) (*Manager, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	store := NewMemoryStore(EvictNotifier(sink))
	t.Cleanup(store.Close)
	tables := &stubTables{tables: []Table{
		{ID: 1, BarID: 1},
		{ID: 2, BarID: 1},
		{ID: 3, BarID: 1, IsDeleted: true},
		{ID: 4, BarID: 2},
	}}
	return NewManager(store, tables, sink, cfg), sink
}

const (
	dateA = "2024-12-24"
	timeA = "20:00"
	dateB = "2024-12-25"
	timeB = "21:30"
)

func TestHoldConflictBetweenAccounts(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	rec, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	assert.True(t, rec.IsHeld)
	assert.Equal(t, uint64(10), rec.AccountID)

	// Scenario A: a second account racing for the same table and slot
	// is rejected and the original hold is untouched.
	_, err = m.Hold(ctx, 1, 1, dateA, timeA, 20)
	require.ErrorIs(t, err, ErrTableHeld)

	holds, err := m.ListHolds(ctx, 1)
	require.NoError(t, err)
	for _, h := range holds {
		if h.TableID == 1 && h.IsHeld {
			assert.Equal(t, uint64(10), h.AccountID)
		}
	}
}

func TestHoldSelfRefreshExtendsExpiry(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	first, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	// P2: the holder may re-hold any number of times without conflict
	// and each call pushes the expiry forward.
	var last TableHold
	for i := 0; i < 3; i++ {
		time.Sleep(5 * time.Millisecond)
		last, err = m.Hold(ctx, 1, 1, dateA, timeA, 10)
		require.NoError(t, err)
	}
	assert.True(t, last.HoldExpiry.After(first.HoldExpiry))
	assert.Equal(t, uint64(10), last.AccountID)
}

func TestHoldAfterExpirySucceedsForNewAccount(t *testing.T) {
	// Scenario B / P3: once the TTL lapses without a release, a
	// different account takes the table without conflict.
	m, _ := newTestManager(t, ManagerConfig{TTL: 30 * time.Millisecond})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	rec, err := m.Hold(ctx, 1, 1, dateA, timeA, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rec.AccountID)
	assert.True(t, rec.IsHeld)
}

func TestReleaseClearsHold(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	rec, err := m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	assert.False(t, rec.IsHeld)
	assert.Zero(t, rec.AccountID)
	assert.Equal(t, uint64(1), rec.TableID)

	// Scenario C: the snapshot shows the table released, not absent.
	holds, err := m.ListHolds(ctx, 1)
	require.NoError(t, err)
	var found bool
	for _, h := range holds {
		if h.TableID == 1 && h.ReservationDate == dateA {
			found = true
			assert.False(t, h.IsHeld)
		}
	}
	assert.True(t, found, "released record should stay visible")
}

func TestReleaseIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	// P4: both releases observe the same released state, no error.
	first, err := m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	second, err := m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	assert.Equal(t, first.IsHeld, second.IsHeld)
	assert.Equal(t, first.AccountID, second.AccountID)
}

func TestLenientReleaseByWrongAccount(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	// Lenient mode: a non-holder gets a released-shaped record back but
	// the real hold survives.
	rec, err := m.Release(ctx, 1, 1, dateA, timeA, 99)
	require.NoError(t, err)
	assert.False(t, rec.IsHeld)

	_, err = m.Hold(ctx, 1, 1, dateA, timeA, 20)
	require.ErrorIs(t, err, ErrTableHeld, "hold must survive a foreign release")
}

func TestStrictReleaseByWrongAccount(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{StrictRelease: true})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	_, err = m.Release(ctx, 1, 1, dateA, timeA, 99)
	require.ErrorIs(t, err, ErrHoldNotFound)

	_, err = m.Release(ctx, 1, 1, dateB, timeB, 10)
	require.ErrorIs(t, err, ErrHoldNotFound, "wrong slot must not match")
}

func TestHoldsOnDifferentTablesAreIndependent(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	// P5: holding table 1 never affects table 2.
	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	rec, err := m.Hold(ctx, 1, 2, dateA, timeA, 20)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rec.AccountID)

	_, err = m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	holds, err := m.ListHolds(ctx, 1)
	require.NoError(t, err)
	for _, h := range holds {
		if h.TableID == 2 {
			assert.True(t, h.IsHeld, "table 2 hold must survive table 1 release")
		}
	}
}

func TestSameTableDifferentSlots(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	// Scenario E: two accounts hold the same table for different slots.
	r1, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	r2, err := m.Hold(ctx, 1, 1, dateB, timeB, 20)
	require.NoError(t, err)
	assert.True(t, r1.IsHeld)
	assert.True(t, r2.IsHeld)

	holds, err := m.ListHolds(ctx, 1)
	require.NoError(t, err)
	active := 0
	for _, h := range holds {
		if h.TableID == 1 && h.IsHeld {
			active++
		}
	}
	assert.Equal(t, 2, active)
}

func TestHoldUnknownTable(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	// Scenario D: table 4 exists but belongs to bar 2.
	_, err := m.Hold(ctx, 1, 4, dateA, timeA, 10)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = m.Hold(ctx, 1, 99, dateA, timeA, 10)
	require.ErrorIs(t, err, ErrTableNotFound)

	// Soft-deleted tables are not holdable either.
	_, err = m.Hold(ctx, 1, 3, dateA, timeA, 10)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = m.Release(ctx, 1, 99, dateA, timeA, 10)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestListHoldsSkipsDeletedTables(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	holds, err := m.ListHolds(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, holds, 2)
	for _, h := range holds {
		assert.NotEqual(t, uint64(3), h.TableID)
		assert.False(t, h.IsHeld)
	}
}

func TestConcurrentHoldsSingleWinner(t *testing.T) {
	// P1 under real contention: many goroutines race for the same table
	// and slot; exactly one wins, everyone else sees ErrTableHeld.
	m, _ := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	const racers = 32
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Hold(ctx, 1, 1, dateA, timeA, uint64(100+i))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrTableHeld)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestHoldNotificationsAreDispatched(t *testing.T) {
	m, sink := newTestManager(t, ManagerConfig{})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)
	_, err = m.Release(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	// Sink calls are fire-and-forget goroutines; wait for them.
	require.Eventually(t, func() bool {
		held, released := sink.counts()
		return held == 1 && released == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAutonomousExpiryNotifiesSink(t *testing.T) {
	m, sink := newTestManager(t, ManagerConfig{TTL: 25 * time.Millisecond})
	ctx := context.Background()

	_, err := m.Hold(ctx, 1, 1, dateA, timeA, 10)
	require.NoError(t, err)

	// No Release call: the eviction timer must fire the release event.
	require.Eventually(t, func() bool {
		_, released := sink.counts()
		return released == 1
	}, time.Second, 10*time.Millisecond)
}

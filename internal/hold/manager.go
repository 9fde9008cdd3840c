package hold

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Table is the slice of table state the hold core needs from the
// persistence layer: identity plus the soft-deletion flag.
type Table struct {
	ID        uint64
	BarID     uint64
	IsDeleted bool
}

// TableFinder is the lookup collaborator the Manager consults before
// touching the store.  Implementations return ErrTableNotFound when the
// table does not exist or does not belong to the bar; the Manager
// additionally rejects soft-deleted tables.
type TableFinder interface {
	GetTable(ctx context.Context, barID, tableID uint64) (Table, error)
	ListTables(ctx context.Context, barID uint64) ([]Table, error)
}

// ManagerConfig carries the tunables of the hold core.
//
// TTL is both the hold lifetime and the bucket's cache window; zero
// means DefaultTTL.  StrictRelease selects the release semantics for a
// non-matching release attempt (wrong holder, wrong slot, already
// expired): false keeps the lenient behaviour of returning a
// released-shaped record, true turns it into ErrHoldNotFound.
type ManagerConfig struct {
	TTL           time.Duration
	StrictRelease bool
}

// Manager enforces the single-holder rule over a Store.  Every mutation
// of one key runs under that key's mutex, so the read-modify-write
// between GetOrCreate and Set is atomic per (bar, table) and two
// accounts racing for the same slot serialize into one winner and one
// ErrTableHeld.  Operations on different keys never contend.
type Manager struct {
	store  Store
	tables TableFinder
	sink   Sink
	ttl    time.Duration
	strict bool

	mu    sync.Mutex
	locks map[Key]*sync.Mutex

	now func() time.Time
}

// NewManager wires the hold core together.  All collaborators must be
// non-nil.
func NewManager(store Store, tables TableFinder, sink Sink, cfg ManagerConfig) *Manager {
	if store == nil || tables == nil || sink == nil {
		panic("nil dependency passed to hold.NewManager")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		tables: tables,
		sink:   sink,
		ttl:    ttl,
		strict: cfg.StrictRelease,
		locks:  make(map[Key]*sync.Mutex),
		now:    time.Now,
	}
}

// TTL reports the configured hold lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Hold places or refreshes a hold on one table for one booking slot.
//
// A table actively held for the same slot by a different account yields
// ErrTableHeld; the existing hold's expiry is never extended by the
// losing attempt.  The current holder may call Hold again any number of
// times; each call overwrites its own record and restarts the TTL.
// An expired hold is dead weight and loses to any new holder.
func (m *Manager) Hold(ctx context.Context, barID, tableID uint64, date, timeSlot string, accountID uint64) (TableHold, error) {
	if err := m.checkTable(ctx, barID, tableID); err != nil {
		return TableHold{}, err
	}
	key := Key{BarID: barID, TableID: tableID}
	lock := m.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	bucket, err := m.store.GetOrCreate(ctx, key, m.ttl)
	if err != nil {
		return TableHold{}, err
	}
	now := m.now()
	sk := slotKey(tableID, date, timeSlot)
	if cur, ok := bucket[sk]; ok && cur.Active(now) && cur.AccountID != accountID {
		return TableHold{}, fmt.Errorf("%w: table %d at %s %s", ErrTableHeld, tableID, date, timeSlot)
	}
	rec := TableHold{
		TableID:         tableID,
		BarID:           barID,
		AccountID:       accountID,
		ReservationDate: date,
		ReservationTime: timeSlot,
		IsHeld:          true,
		HoldExpiry:      now.Add(m.ttl),
	}
	bucket[sk] = rec
	if err := m.store.Set(ctx, key, bucket, m.ttl); err != nil {
		return TableHold{}, err
	}
	go m.sink.NotifyHeld(tableID)
	return rec, nil
}

// Release clears the caller's hold on one table and slot.  Only the
// account that created the hold can release it; everyone else waits for
// expiry.  When no active hold matches the caller, behaviour follows
// the configured release semantics: lenient mode answers with a
// released-shaped record as if the release had happened, strict mode
// returns ErrHoldNotFound.  Releasing twice in a row is always safe.
func (m *Manager) Release(ctx context.Context, barID, tableID uint64, date, timeSlot string, accountID uint64) (TableHold, error) {
	if err := m.checkTable(ctx, barID, tableID); err != nil {
		return TableHold{}, err
	}
	key := Key{BarID: barID, TableID: tableID}
	lock := m.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	bucket, err := m.store.GetOrCreate(ctx, key, m.ttl)
	if err != nil {
		return TableHold{}, err
	}
	sk := slotKey(tableID, date, timeSlot)
	cur, ok := bucket[sk]
	if !ok || !cur.Active(m.now()) || cur.AccountID != accountID {
		if m.strict {
			return TableHold{}, fmt.Errorf("%w: table %d at %s %s", ErrHoldNotFound, tableID, date, timeSlot)
		}
		return TableHold{
			TableID:         tableID,
			BarID:           barID,
			ReservationDate: date,
			ReservationTime: timeSlot,
		}, nil
	}
	rec := cur.released()
	bucket[sk] = rec
	if err := m.store.Set(ctx, key, bucket, m.ttl); err != nil {
		return TableHold{}, err
	}
	go m.sink.NotifyReleased(tableID)
	return rec, nil
}

// ListHolds returns the current hold snapshot for every non-deleted
// table of the bar.  Tables with no hold history appear once with
// IsHeld false, so clients can render the full table map from this one
// call.  The scan is read-only apart from the store's own
// create-on-read of empty buckets.
func (m *Manager) ListHolds(ctx context.Context, barID uint64) ([]TableHold, error) {
	tables, err := m.tables.ListTables(ctx, barID)
	if err != nil {
		return nil, err
	}
	now := m.now()
	out := make([]TableHold, 0, len(tables))
	for _, t := range tables {
		if t.IsDeleted {
			continue
		}
		bucket, err := m.store.GetOrCreate(ctx, Key{BarID: barID, TableID: t.ID}, m.ttl)
		if err != nil {
			return nil, err
		}
		if len(bucket) == 0 {
			out = append(out, TableHold{TableID: t.ID, BarID: barID})
			continue
		}
		keys := make([]string, 0, len(bucket))
		for k := range bucket {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rec := bucket[k]
			if rec.IsHeld && !now.Before(rec.HoldExpiry) {
				rec = rec.released()
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// checkTable validates that the table exists, belongs to the bar and is
// not soft-deleted.
func (m *Manager) checkTable(ctx context.Context, barID, tableID uint64) error {
	t, err := m.tables.GetTable(ctx, barID, tableID)
	if err != nil {
		return err
	}
	if t.IsDeleted {
		return fmt.Errorf("%w: table %d", ErrTableNotFound, tableID)
	}
	return nil
}

// lockFor returns the mutex guarding one key, creating it on first use.
// Locks are never removed; the set is bounded by the number of tables.
func (m *Manager) lockFor(key Key) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

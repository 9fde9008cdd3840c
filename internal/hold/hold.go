// Package hold implements the table-hold reservation core: a temporary,
// in-memory "lock" a customer takes on a bar table for a specific booking
// slot while they complete the checkout flow.  Holds are advisory and
// non-durable; they live in a time-expiring store, never in the database.
// The package is deliberately self-contained so the surrounding CRUD
// application only touches it through the Manager.
package hold

import (
	"fmt"
	"time"
)

// DefaultTTL is how long a hold stays valid when the caller does not
// configure a different window.  Five minutes matches the checkout flow:
// long enough to pick drinks and confirm, short enough that abandoned
// carts free the table quickly.
const DefaultTTL = 5 * time.Minute

// Key identifies a bucket in the Store.  Each (bar, table) pair owns its
// own cache entry so holds on different tables never contend.
//
// Fields:
//
//	BarID   – bar the table belongs to.
//	TableID – the physical table.
type Key struct {
	BarID   uint64 // bar identifier
	TableID uint64 // table identifier
}

// String renders the key in the form used by keyed stores (e.g. Redis).
func (k Key) String() string {
	return fmt.Sprintf("hold:%d:%d", k.BarID, k.TableID)
}

// TableHold is the ephemeral record for one table and one booking slot.
// A released hold keeps its TableID but drops AccountID and IsHeld, so a
// late reader can tell "was held, now free" apart from "never held".
//
// Fields:
//
//	TableID         – table being held.
//	BarID           – bar the table belongs to.
//	AccountID       – holder identity; zero once released.
//	ReservationDate – booking date the hold is for (YYYY-MM-DD).
//	ReservationTime – booking time slot the hold is for (HH:MM).
//	IsHeld          – false is the released state, not a deletion.
//	HoldExpiry      – absolute instant after which the hold is void.
type TableHold struct {
	TableID         uint64    `json:"table_id"`
	BarID           uint64    `json:"bar_id"`
	AccountID       uint64    `json:"account_id"`
	ReservationDate string    `json:"reservation_date"`
	ReservationTime string    `json:"reservation_time"`
	IsHeld          bool      `json:"is_held"`
	HoldExpiry      time.Time `json:"hold_expiry"`
}

// Active reports whether the hold is currently effective: marked held and
// not yet past its expiry.  Both conditions must agree: an entry whose
// expiry has passed is never treated as held, regardless of IsHeld.
func (h TableHold) Active(now time.Time) bool {
	return h.IsHeld && now.Before(h.HoldExpiry)
}

// released returns the record transitioned to its released shape: the
// table identity survives, the holder is cleared.
func (h TableHold) released() TableHold {
	h.IsHeld = false
	h.AccountID = 0
	return h
}

// Bucket is the value stored under a Key: all hold records for that
// table, keyed by slot so checks for a specific (date, time) stay O(1).
// A table can carry several records at once because it may be free for
// one slot while held for another.
type Bucket map[string]TableHold

// slotKey builds the bucket key for a booking slot.
func slotKey(tableID uint64, date, timeSlot string) string {
	return fmt.Sprintf("%d|%s|%s", tableID, date, timeSlot)
}

// clone returns a shallow copy of the bucket.  Stores hand out clones so
// callers can never mutate stored state without writing it back.
func (b Bucket) clone() Bucket {
	out := make(Bucket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

package hold

import "log"

// Sink receives one-way notifications after every successful hold state
// transition, so other viewers of the same bar's table map can refresh.
// Implementations must not block: the Manager dispatches these calls on a
// detached goroutine after the store write completes, and delivery
// failures are logged by the implementation, never surfaced to the
// caller of Hold/Release.
type Sink interface {
	NotifyHeld(tableID uint64)
	NotifyReleased(tableID uint64)
}

// EvictNotifier adapts a Sink into the EvictFunc a store calls on
// autonomous TTL expiry, so expiry broadcasts the same release events an
// explicit Release would.  The expiry path itself never errors; it is a
// background state transition.
func EvictNotifier(sink Sink) EvictFunc {
	return func(_ Key, released []TableHold) {
		for _, rec := range released {
			sink.NotifyReleased(rec.TableID)
		}
	}
}

// LogSink is a Sink that only writes to the process log.  It is the
// fallback when no broker is configured and the default for tests.
type LogSink struct{}

// NotifyHeld logs the hold event.
func (LogSink) NotifyHeld(tableID uint64) {
	log.Printf("hold: table %d held", tableID)
}

// NotifyReleased logs the release event.
func (LogSink) NotifyReleased(tableID uint64) {
	log.Printf("hold: table %d released", tableID)
}

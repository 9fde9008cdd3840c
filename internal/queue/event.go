// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

// TableStatusEvent is broadcast whenever a table's hold state changes,
// so clients viewing the same bar's table map can refresh.  It carries
// no holder identity on purpose: viewers only need to know the table
// flipped, not who flipped it.
type TableStatusEvent struct {
	EventID string `json:"event_id"` // unique id for de-duplication by consumers
	TableID uint64 `json:"table_id"`
	Status  string `json:"status"` // "HELD" or "RELEASED"
	SentAt  string `json:"sent_at"`
}

// Table status values carried by TableStatusEvent.
const (
	StatusHeld     = "HELD"
	StatusReleased = "RELEASED"
)

// BookingConfirmedEvent is published when a hold is successfully
// converted into a booking.  It contains enough information for
// downstream consumers to log, notify, or trigger analytics without
// querying the primary database.
type BookingConfirmedEvent struct {
	EventID         string   `json:"event_id"`
	BookingID       uint64   `json:"booking_id"`
	BookingCode     string   `json:"booking_code"`
	AccountID       uint64   `json:"account_id"`
	BarID           uint64   `json:"bar_id"`
	BarName         string   `json:"bar_name"`
	ReservationDate string   `json:"reservation_date"`
	ReservationTime string   `json:"reservation_time"`
	TableNames      []string `json:"tables"`
	TotalCents      uint64   `json:"total_cents"`
	ConfirmedAt     string   `json:"confirmed_at"`
}

// Queue names.  Both queues are declared durable by publisher and
// consumer alike so declaration is idempotent on either side.
const (
	TableStatusQueue      = "table.status"
	BookingConfirmedQueue = "booking.confirmed"
)

package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Consumers in other services match on these exact field names and
// values, so the wire shape is pinned here.

func TestTableStatusEventWireShape(t *testing.T) {
	ev := TableStatusEvent{
		EventID: "ev-1",
		TableID: 12,
		Status:  StatusHeld,
		SentAt:  "2026-08-31T20:00:00Z",
	}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "ev-1", m["event_id"])
	assert.EqualValues(t, 12, m["table_id"])
	assert.Equal(t, "HELD", m["status"])
	assert.Equal(t, "2026-08-31T20:00:00Z", m["sent_at"])

	assert.Equal(t, "HELD", StatusHeld)
	assert.Equal(t, "RELEASED", StatusReleased)
}

func TestBookingConfirmedEventWireShape(t *testing.T) {
	ev := BookingConfirmedEvent{
		EventID:         "ev-2",
		BookingID:       7,
		BookingCode:     "BK-1234",
		AccountID:       42,
		BarID:           3,
		BarName:         "Dive Bar",
		ReservationDate: "2026-12-24",
		ReservationTime: "20:00",
		TableNames:      []string{"T1", "T2"},
		TotalCents:      4500,
		ConfirmedAt:     "2026-08-31T20:05:00Z",
	}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "BK-1234", m["booking_code"])
	assert.EqualValues(t, 7, m["booking_id"])
	assert.EqualValues(t, 42, m["account_id"])
	assert.EqualValues(t, 3, m["bar_id"])
	assert.Equal(t, "Dive Bar", m["bar_name"])
	assert.Equal(t, "2026-12-24", m["reservation_date"])
	assert.Equal(t, "20:00", m["reservation_time"])
	assert.Equal(t, []any{"T1", "T2"}, m["tables"])
	assert.EqualValues(t, 4500, m["total_cents"])
}

func TestQueueNames(t *testing.T) {
	assert.Equal(t, "table.status", TableStatusQueue)
	assert.Equal(t, "booking.confirmed", BookingConfirmedQueue)
}

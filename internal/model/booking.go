package model

import "time"

// Booking status values.  A booking starts PENDING, staff move it to
// SERVING on arrival and COMPLETED after checkout; either side may
// cancel while it is still PENDING.
const (
	BookingPending   = "PENDING"
	BookingServing   = "SERVING"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Booking is a confirmed reservation, created only after a table hold
// was successfully converted.  The Code is the customer-facing booking
// reference.
//
// Fields:
//
//	ID              – primary key identifier.
//	Code            – opaque booking reference shown to the customer.
//	AccountID       – booking customer.
//	BarID           – bar being visited.
//	ReservationDate – booked date (YYYY-MM-DD).
//	ReservationTime – booked time slot (HH:MM).
//	GuestCount      – party size.
//	Note            – free-form customer note.
//	Status          – PENDING, SERVING, COMPLETED or CANCELLED.
//	TotalCents      – total drink pre-order amount in cents.
//	CreatedAt       – creation timestamp.
//	UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    `json:"id"`               // bookings.id
	Code            string    `json:"code"`             // bookings.code
	AccountID       uint64    `json:"account_id"`       // bookings.account_id
	BarID           uint64    `json:"bar_id"`           // bookings.bar_id
	ReservationDate string    `json:"reservation_date"` // bookings.reservation_date
	ReservationTime string    `json:"reservation_time"` // bookings.reservation_time
	GuestCount      uint32    `json:"guest_count"`      // bookings.guest_count
	Note            string    `json:"note"`             // bookings.note
	Status          string    `json:"status"`           // bookings.status
	TotalCents      uint64    `json:"total_cents"`      // bookings.total_cents
	CreatedAt       time.Time `json:"created_at"`       // bookings.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // bookings.updated_at
}

// BookingTable links a booking to one reserved table.
//
// Fields:
//
//	ID        – primary key identifier.
//	BookingID – owning booking.
//	TableID   – reserved table.
type BookingTable struct {
	ID        uint64 `json:"id"`         // booking_tables.id
	BookingID uint64 `json:"booking_id"` // booking_tables.booking_id
	TableID   uint64 `json:"table_id"`   // booking_tables.table_id
}

// BookingDrink is one pre-ordered drink line on a booking.  The unit
// price is copied at booking time so later menu edits don't rewrite
// history.
//
// Fields:
//
//	ID         – primary key identifier.
//	BookingID  – owning booking.
//	DrinkID    – ordered drink.
//	Quantity   – number of units.
//	PriceCents – unit price in cents at booking time.
type BookingDrink struct {
	ID         uint64 `json:"id"`          // booking_drinks.id
	BookingID  uint64 `json:"booking_id"`  // booking_drinks.booking_id
	DrinkID    uint64 `json:"drink_id"`    // booking_drinks.drink_id
	Quantity   uint32 `json:"quantity"`    // booking_drinks.quantity
	PriceCents uint32 `json:"price_cents"` // booking_drinks.price_cents
}

package model

import "time"

// Feedback is a customer review left for a bar after a completed
// booking.
//
// Fields:
//
//	ID        – primary key identifier.
//	AccountID – reviewing customer.
//	BarID     – reviewed bar.
//	BookingID – booking the review refers to.
//	Rating    – 1–5 stars.
//	Comment   – free-form review text.
//	IsDeleted – soft-deletion flag (admin moderation).
//	CreatedAt – creation timestamp.
type Feedback struct {
	ID        uint64    `json:"id"`         // feedback.id
	AccountID uint64    `json:"account_id"` // feedback.account_id
	BarID     uint64    `json:"bar_id"`     // feedback.bar_id
	BookingID uint64    `json:"booking_id"` // feedback.booking_id
	Rating    uint8     `json:"rating"`     // feedback.rating
	Comment   string    `json:"comment"`    // feedback.comment
	IsDeleted bool      `json:"-"`          // feedback.is_deleted
	CreatedAt time.Time `json:"created_at"` // feedback.created_at
}

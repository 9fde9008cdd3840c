package model

import "time"

// Notification is a stored message shown in an account's notification
// feed (booking confirmed, booking cancelled, event announcements).
// Delivery beyond this table (push, email) is handled by downstream
// consumers of the message queue.
//
// Fields:
//
//	ID        – primary key identifier.
//	AccountID – recipient.
//	Title     – short headline.
//	Message   – body text.
//	IsRead    – whether the recipient has opened it.
//	CreatedAt – creation timestamp.
type Notification struct {
	ID        uint64    `json:"id"`         // notifications.id
	AccountID uint64    `json:"account_id"` // notifications.account_id
	Title     string    `json:"title"`      // notifications.title
	Message   string    `json:"message"`    // notifications.message
	IsRead    bool      `json:"is_read"`    // notifications.is_read
	CreatedAt time.Time `json:"created_at"` // notifications.created_at
}

package model

import "time"

// Bar represents a venue on the platform.  A bar owns tables, drinks
// and events.  Rows are soft-deleted via IsDeleted so historical
// bookings keep their references.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – display name, unique per platform.
//	Address     – street address shown to customers.
//	Phone       – contact phone number.
//	Email       – contact email.
//	Description – free-form description for the browse page.
//	OpenTime    – daily opening time (HH:MM).
//	CloseTime   – daily closing time (HH:MM).
//	Discount    – percentage discount applied to bookings (0–100).
//	IsDeleted   – soft-deletion flag.
//	CreatedAt   – timestamp of creation.
//	UpdatedAt   – timestamp of last update.
type Bar struct {
	ID          uint64    `json:"id"`          // bars.id
	Name        string    `json:"name"`        // bars.name
	Address     string    `json:"address"`     // bars.address
	Phone       string    `json:"phone"`       // bars.phone
	Email       string    `json:"email"`       // bars.email
	Description string    `json:"description"` // bars.description
	OpenTime    string    `json:"open_time"`   // bars.open_time (HH:MM)
	CloseTime   string    `json:"close_time"`  // bars.close_time (HH:MM)
	Discount    uint8     `json:"discount"`    // bars.discount (percent)
	IsDeleted   bool      `json:"-"`           // bars.is_deleted
	CreatedAt   time.Time `json:"created_at"`  // bars.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // bars.updated_at
}

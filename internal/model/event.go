package model

import "time"

// Event is a promotional or live event hosted by a bar (live music,
// happy hour, themed night).  Events are shown on the browse pages and
// expire once their end time passes.
//
// Fields:
//
//	ID          – primary key identifier.
//	BarID       – hosting bar.
//	Name        – event title.
//	Description – free-form description.
//	StartsAt    – when the event begins.
//	EndsAt      – when the event ends.
//	IsDeleted   – soft-deletion flag.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    `json:"id"`          // events.id
	BarID       uint64    `json:"bar_id"`      // events.bar_id
	Name        string    `json:"name"`        // events.name
	Description string    `json:"description"` // events.description
	StartsAt    time.Time `json:"starts_at"`   // events.starts_at
	EndsAt      time.Time `json:"ends_at"`     // events.ends_at
	IsDeleted   bool      `json:"-"`           // events.is_deleted
	CreatedAt   time.Time `json:"created_at"`  // events.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // events.updated_at
}

package model

import "time"

// TableType categorizes tables by capacity and price band (e.g. SVIP
// booth, standard four-seater, bar counter).  Types belong to a bar so
// each venue defines its own tiers.
//
// Fields:
//
//	ID          – primary key identifier.
//	BarID       – owning bar.
//	Name        – display name of the tier.
//	Description – free-form description.
//	MinGuests   – minimum party size the tier fits.
//	MaxGuests   – maximum party size the tier fits.
//	IsDeleted   – soft-deletion flag.
type TableType struct {
	ID          uint64 `json:"id"`          // table_types.id
	BarID       uint64 `json:"bar_id"`      // table_types.bar_id
	Name        string `json:"name"`        // table_types.name
	Description string `json:"description"` // table_types.description
	MinGuests   uint32 `json:"min_guests"`  // table_types.min_guests
	MaxGuests   uint32 `json:"max_guests"`  // table_types.max_guests
	IsDeleted   bool   `json:"-"`           // table_types.is_deleted
}

// BarTable describes a physical table in a bar.  Tables are the unit of
// reservation: holds and bookings always target one table for one slot.
//
// Fields:
//
//	ID          – primary key identifier.
//	BarID       – bar the table belongs to.
//	TableTypeID – tier of the table.
//	Name        – label printed on the table map (e.g. "A5").
//	IsDeleted   – soft-deletion flag; deleted tables are not holdable.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type BarTable struct {
	ID          uint64    `json:"id"`            // tables.id
	BarID       uint64    `json:"bar_id"`        // tables.bar_id
	TableTypeID uint64    `json:"table_type_id"` // tables.table_type_id
	Name        string    `json:"name"`          // tables.name
	IsDeleted   bool      `json:"-"`             // tables.is_deleted
	CreatedAt   time.Time `json:"created_at"`    // tables.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // tables.updated_at
}

package model

import "time"

// DrinkCategory groups drinks on a bar's menu (cocktails, beers, soft
// drinks).  Categories are platform-wide; drinks bind them to a bar.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – unique category name.
//	Description – free-form description.
//	IsDeleted   – soft-deletion flag.
type DrinkCategory struct {
	ID          uint64 `json:"id"`          // drink_categories.id
	Name        string `json:"name"`        // drink_categories.name
	Description string `json:"description"` // drink_categories.description
	IsDeleted   bool   `json:"-"`           // drink_categories.is_deleted
}

// Drink is one menu item of a bar.  Prices are stored in integer cents
// to avoid floating point rounding.
//
// Fields:
//
//	ID         – primary key identifier.
//	BarID      – bar selling the drink.
//	CategoryID – menu category.
//	Name       – display name.
//	PriceCents – unit price in cents.
//	IsDeleted  – soft-deletion flag.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type Drink struct {
	ID         uint64    `json:"id"`          // drinks.id
	BarID      uint64    `json:"bar_id"`      // drinks.bar_id
	CategoryID uint64    `json:"category_id"` // drinks.category_id
	Name       string    `json:"name"`        // drinks.name
	PriceCents uint32    `json:"price_cents"` // drinks.price_cents
	IsDeleted  bool      `json:"-"`           // drinks.is_deleted
	CreatedAt  time.Time `json:"created_at"`  // drinks.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // drinks.updated_at
}

// Package model defines the persistence-layer records shared by the
// repositories.  JSON tags are kept minimal; handlers that need a
// different public shape define their own response types.
package model

import "time"

// Account roles.  Customers book tables; staff run a bar's day-to-day
// operations; admins manage the whole platform.
const (
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
	RoleAdmin    = "ADMIN"
)

// Account represents an application user as stored in the `accounts`
// table.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	FullName     – display name.
//	Phone        – contact phone number (optional).
//	Role         – CUSTOMER, STAFF or ADMIN.
//	BarID        – bar a STAFF account is assigned to (0 otherwise).
//	IsActive     – whether the account may sign in.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type Account struct {
	ID           uint64    `json:"id"`         // accounts.id
	Email        string    `json:"email"`      // accounts.email
	PasswordHash string    `json:"-"`          // accounts.password_hash
	FullName     string    `json:"full_name"`  // accounts.full_name
	Phone        string    `json:"phone"`      // accounts.phone
	Role         string    `json:"role"`       // accounts.role
	BarID        uint64    `json:"bar_id"`     // accounts.bar_id (staff assignment)
	IsActive     bool      `json:"is_active"`  // accounts.is_active
	CreatedAt    time.Time `json:"created_at"` // accounts.created_at
	UpdatedAt    time.Time `json:"updated_at"` // accounts.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//
//	ID        – primary key identifier.
//	AccountID – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp.
//	RevokedAt – when the token was revoked (nil while active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	AccountID uint64     // refresh_tokens.account_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

package hold

import "errors"

// Error values returned by the Manager.  Handlers translate these into
// HTTP statuses: ErrTableNotFound -> 404, ErrTableHeld -> 409,
// ErrHoldNotFound -> 404 (strict release mode only).

// ErrTableNotFound is returned when the table does not exist, does not
// belong to the given bar, or has been soft-deleted.
var ErrTableNotFound = errors.New("table not found")

// ErrTableHeld is returned when the table is actively held for the same
// slot by a different account.  Callers may retry after the hold TTL
// elapses or pick another table.
var ErrTableHeld = errors.New("table already held by another account")

// ErrHoldNotFound is returned by Release in strict mode when no active
// hold matches the caller's account and slot.  In lenient mode the same
// situation yields a released-shaped record and no error.
var ErrHoldNotFound = errors.New("no matching hold")

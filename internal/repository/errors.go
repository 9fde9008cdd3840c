// Package repository contains data access logic separated from HTTP
// handlers.  Each entity gets its own repo type over the shared sql.DB;
// sentinel errors let handlers map failures to HTTP statuses without
// inspecting driver internals.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot proceed because of
// conflicting state, such as cancelling a booking that is already being
// served.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether a MySQL error is a unique-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

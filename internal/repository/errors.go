// Package repository defines sentinel error values shared across the
// entity repositories. Handlers compare against these with errors.Is
// to pick the HTTP status for a failure: ErrNotFound maps to 404,
// ErrForbidden to 403, ErrConflict to 409 and ErrCapacityFull to 400.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested user, hackathon or
// registration does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller's role or ownership does not
// permit the operation, e.g. a student creating a hackathon or a
// faculty user deleting someone else's listing.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a student attempts to register twice for
// the same hackathon.
var ErrConflict = errors.New("already registered")

// ErrCapacityFull is returned when a hackathon with a participant limit
// has no remaining spots.
var ErrCapacityFull = errors.New("maximum participants reached")

// ErrInvalidRole is returned when a role outside {student, faculty} is
// supplied to the user directory.
var ErrInvalidRole = errors.New("role must be student or faculty")

// ErrEmailExists is returned by signup when the email is already taken.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is MySQL error 1062, a unique key
// violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKeyViolation reports whether err is MySQL error 1452, an
// insert referencing a parent row that does not exist.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}
